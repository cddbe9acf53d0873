package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshmohod/land-verification/internal/shared/server/middleware"
	"github.com/Harshmohod/land-verification/internal/shared/server/respond"
	"github.com/Harshmohod/land-verification/internal/users"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches stats routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.overview)
}

func (h *Handler) overview(c *gin.Context) {
	if middleware.RoleFromContext(c) != users.RoleAdmin {
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "admin access required", nil)
		return
	}

	ov, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to compute stats", nil)
		return
	}

	respond.OK(c, ov)
}
