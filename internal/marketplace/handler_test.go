package marketplace

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketDataHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api/farmer"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/farmer/marketplace/marketdata", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var got []Listing
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, DefaultListings(), got)
}

func TestMarketDataHandlerAppliesQueryFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api/farmer"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet,
		"/api/farmer/marketplace/marketdata?category=Grains&maxPrice=1&minPrice=abc", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var got []Listing
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, []string{"Corn"}, titles(got))

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/farmer/marketplace/marketdata?location=Atlantis", nil))
	assert.JSONEq(t, `[]`, resp.Body.String())
}
