package yield

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmhub-backend/internal/shared/metrics"
	"farmhub-backend/internal/shared/server/middleware"
	"farmhub-backend/internal/shared/server/respond"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/yieldestimation/estimatedyield", h.estimate)
}

type estimateResponse struct {
	Result
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

func (h *Handler) estimate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncYieldRejected()
		respond.InvalidInput(c, "request body must be a JSON object", bindIssues(err)...)
		return
	}

	result, err := Estimate(req)
	if err != nil {
		metrics.IncYieldRejected()
		var yerr *Error
		if errors.As(err, &yerr) {
			respond.InvalidInput(c, yerr.Error(), respond.FieldIssue{Field: yerr.Field, Issue: yerr.Msg})
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to estimate yield", nil)
		return
	}

	tier := TierFor(result.Efficiency)
	metrics.ObserveYieldEstimate(string(tier), result.Efficiency)
	middleware.AddLogField(c, "crop", req.Crop)
	middleware.AddLogField(c, "tier", string(tier))
	middleware.AddLogField(c, "efficiency", result.Efficiency)
	if req.LandArea.Defaulted() {
		middleware.AddLogField(c, "land_area_defaulted", true)
	}

	resp := estimateResponse{Result: result}
	if explain, _ := strconv.ParseBool(c.Query("explain")); explain {
		b := Explain(req)
		resp.Breakdown = &b
	}
	respond.OK(c, resp)
}

func bindIssues(err error) []respond.FieldIssue {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return []respond.FieldIssue{{Field: typeErr.Field, Issue: "must be a " + typeErr.Type.String()}}
	case errors.Is(err, io.EOF):
		return []respond.FieldIssue{{Field: "body", Issue: "required"}}
	default:
		return nil
	}
}
