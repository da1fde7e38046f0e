package croprec

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"farmhub-backend/internal/shared/metrics"
	"farmhub-backend/internal/shared/server/middleware"
	"farmhub-backend/internal/shared/server/respond"
)

// Recommender is the upstream the handler delegates to.
type Recommender interface {
	Recommend(ctx context.Context, f Features) (string, error)
}

type Handler struct {
	Client Recommender
}

func NewHandler(client Recommender) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/croprecommendation/cropdata", h.recommend)
}

type recommendResponse struct {
	Success bool           `json:"success"`
	Data    recommendation `json:"data"`
}

func (h *Handler) recommend(c *gin.Context) {
	var f Features
	if err := c.ShouldBindJSON(&f); err != nil {
		metrics.IncCropRecommendation("invalid")
		respond.InvalidInput(c, "soil and climate readings are required numbers", bindIssues(err, f)...)
		return
	}
	if h.Client == nil {
		metrics.IncCropRecommendation("unconfigured")
		respond.Error(c, http.StatusServiceUnavailable, respond.CodeUnavailable, "crop recommendation is not available", nil)
		return
	}

	crop, err := h.Client.Recommend(c.Request.Context(), f)
	if err != nil {
		var rej *RejectedError
		switch {
		case errors.Is(err, ErrNotConfigured):
			metrics.IncCropRecommendation("unconfigured")
			respond.Error(c, http.StatusServiceUnavailable, respond.CodeUnavailable, "crop recommendation is not available", nil)
		case errors.As(err, &rej):
			metrics.IncCropRecommendation("rejected")
			respond.Error(c, http.StatusBadGateway, respond.CodeUpstreamError, rej.Message, nil)
		default:
			metrics.IncCropRecommendation("error")
			middleware.AddLogField(c, "upstream_error", err.Error())
			respond.Error(c, http.StatusBadGateway, respond.CodeUpstreamError, "crop recommendation service failed", nil)
		}
		return
	}

	metrics.IncCropRecommendation("ok")
	middleware.AddLogField(c, "recommendation", crop)
	respond.OK(c, recommendResponse{Success: true, Data: recommendation{Recommendation: crop}})
}

func bindIssues(err error, f Features) []respond.FieldIssue {
	var typeErr *json.UnmarshalTypeError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return []respond.FieldIssue{{Field: typeErr.Field, Issue: "must be a number"}}
	case errors.Is(err, io.EOF):
		return []respond.FieldIssue{{Field: "body", Issue: "required"}}
	case errors.As(err, &verrs):
		var out []respond.FieldIssue
		for _, name := range f.Missing() {
			out = append(out, respond.FieldIssue{Field: name, Issue: "required"})
		}
		return out
	default:
		return nil
	}
}
