package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type dashboardHandler struct {
	Service domain.DashboardUsecase
}

func NewDashboardHandler(svc domain.DashboardUsecase) *dashboardHandler {
	return &dashboardHandler{
		Service: svc,
	}
}

func (h *dashboardHandler) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.Service.Snapshot(ctx)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}
