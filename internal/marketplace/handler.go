package marketplace

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"farmhub-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/marketplace/marketdata", h.marketData)
}

func (h *Handler) marketData(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "service unavailable", nil)
		return
	}
	listings, err := h.Svc.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load market data", nil)
		return
	}
	respond.List(c, listings)
}

func filterFromQuery(c *gin.Context) Filter {
	return Filter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		Delivery: c.Query("delivery"),
		MinPrice: optionalFloat(c.Query("minPrice")),
		MaxPrice: optionalFloat(c.Query("maxPrice")),
	}
}

// optionalFloat returns nil for blank or non-numeric input.
func optionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}
