package yield

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/farmer"))
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
			Issue string `json:"issue"`
		} `json:"details"`
	} `json:"error"`
}

func TestHandlerEstimate(t *testing.T) {
	r := newRouter()
	resp := post(r, "/api/farmer/yieldestimation/estimatedyield",
		`{"crop":"corn","landArea":"3","soilType":"Silt","waterAvailability":"High","irrigationMethod":"Sprinkler",
		  "fertilizerUse":"Chemical","farmingMethod":"Conventional","pesticideUse":"Low","sowingMonth":"March"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 3)
	assert.Equal(t, "Strong Corn Potential", got["title"])
	assert.EqualValues(t, 80, got["efficiency"])
	assert.Contains(t, got["description"], "Estimated production: 24.0 tons.")
}

func TestHandlerEstimateExplain(t *testing.T) {
	r := newRouter()
	resp := post(r, "/api/farmer/yieldestimation/estimatedyield?explain=true",
		`{"crop":"wheat","soilType":"Loamy","waterAvailability":"High","farmingMethod":"Hydroponic","fertilizerUse":"Mixed"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	var got struct {
		Efficiency int       `json:"efficiency"`
		Breakdown  Breakdown `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, 98, got.Efficiency)
	assert.Equal(t, 115, got.Breakdown.RawScore)
	assert.Equal(t, TierExcellent, got.Breakdown.Tier)
	assert.Len(t, got.Breakdown.Adjustments, 4)
}

func TestHandlerRejectsMissingCrop(t *testing.T) {
	r := newRouter()
	resp := post(r, "/api/farmer/yieldestimation/estimatedyield", `{"soilType":"Loamy","landArea":"2"}`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "InvalidInput", env.Error.Code)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "crop", env.Error.Details[0].Field)
}

func TestHandlerRejectsNonStringCrop(t *testing.T) {
	r := newRouter()
	resp := post(r, "/api/farmer/yieldestimation/estimatedyield", `{"crop":42,"soilType":"Loamy"}`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "InvalidInput", env.Error.Code)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "crop", env.Error.Details[0].Field)
}

func TestHandlerRejectsEmptyBody(t *testing.T) {
	r := newRouter()
	resp := post(r, "/api/farmer/yieldestimation/estimatedyield", "")

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "InvalidInput", env.Error.Code)
}

func TestHandlerDefaultsInvalidLandArea(t *testing.T) {
	r := newRouter()
	resp := post(r, "/api/farmer/yieldestimation/estimatedyield", `{"crop":"rice","landArea":"lots"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	var got Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, 70, got.Efficiency)
	assert.Contains(t, got.Description, "Estimated production: 7.0 tons.")
	assert.NotContains(t, got.Description, "NaN")
}
