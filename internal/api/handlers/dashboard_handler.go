package handlers

import (
	"net/http"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/utils"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *application.DashboardService
}

func NewDashboardHandler(svc *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Tenant(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	dashboard, err := h.svc.TenantDashboard(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) Manager(c *gin.Context) {
	dashboard, err := h.svc.ManagerDashboard()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) Contractor(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	dashboard, err := h.svc.ContractorDashboard(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
