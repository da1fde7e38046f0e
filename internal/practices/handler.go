package practices

import (
	"net/http"

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
	rg.GET("/sustainableagriculture/sustainablepractices", h.list)
}

func (h *Handler) list(c *gin.Context) {
	tips, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load sustainable practices", nil)
		return
	}
	respond.List(c, tips)
}
