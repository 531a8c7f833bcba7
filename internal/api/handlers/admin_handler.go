package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/utils"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc   *application.AdminService
	audit repository.AuditRepo
}

func NewAdminHandler(svc *application.AdminService, audit repository.AuditRepo) *AdminHandler {
	return &AdminHandler{svc: svc, audit: audit}
}

// --- User directory ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var search *string
	if s := c.Query("search"); s != "" {
		search = &s
	}
	var roleID *uint
	if r := c.Query("role_id"); r != "" {
		parsed, err := strconv.ParseUint(r, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid role_id parameter"})
			return
		}
		id := uint(parsed)
		roleID = &id
	}

	users, err := h.svc.ListUsers(search, roleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.svc.GetUser(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input user.AdminCreateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	u, err := h.svc.CreateUser(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "user", strconv.FormatUint(uint64(u.ID), 10), nil, u, "user created by admin", h.audit)
	c.JSON(http.StatusCreated, u)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input user.UpdateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	u, err := h.svc.UpdateUser(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.DeleteUser(uid, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "delete", "user", strconv.FormatUint(uint64(id), 10), nil, nil, "user deleted by admin", h.audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "User deleted"})
}

func (h *AdminHandler) UserStats(c *gin.Context) {
	stats, err := h.svc.GetUserStats()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- Roles ---

func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.svc.ListRoles()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *AdminHandler) CreateRole(c *gin.Context) {
	var input user.CreateRoleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	r, err := h.svc.CreateRole(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input user.UpdateRoleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	r, err := h.svc.UpdateRole(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AdminHandler) DeleteRole(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.DeleteRole(uid, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Role deleted"})
}

// --- Notes ---

func (h *AdminHandler) CreateNote(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input admin.CreateNoteDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	note, err := h.svc.CreateNote(uid, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *AdminHandler) ListNotes(c *gin.Context) {
	tenantID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	notes, err := h.svc.ListNotesForTenant(tenantID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// --- Role applications ---

// ApplyForContractor accepts the multipart application form with an optional
// CV attachment.
func (h *AdminHandler) ApplyForContractor(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input admin.ContractorApplicationDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	var cv *application.Upload
	if fh, err := c.FormFile("cv"); err == nil {
		uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read cv: " + err.Error()})
			return
		}
		defer closeAll()
		cv = &uploads[0]
	}

	rr, err := h.svc.ApplyForContractor(c.Request.Context(), uid, input, cv)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rr)
}

func (h *AdminHandler) ApplyForManager(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input admin.ManagerApplicationDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	rr, err := h.svc.ApplyForManager(c.Request.Context(), uid, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rr)
}

func (h *AdminHandler) ApplicationStatus(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	status, err := h.svc.GetApplicationStatus(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *AdminHandler) ListRoleRequests(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	requests, err := h.svc.ListRoleRequests(status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *AdminHandler) ApproveRoleRequest(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input admin.ResolveRequestDTO
	_ = c.ShouldBindJSON(&input) // notes are optional

	rr, err := h.svc.ApproveRoleRequest(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "update", "role_request", strconv.FormatUint(uint64(id), 10), nil, rr, "role request approved", h.audit)
	c.JSON(http.StatusOK, rr)
}

func (h *AdminHandler) RejectRoleRequest(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input admin.ResolveRequestDTO
	_ = c.ShouldBindJSON(&input)

	rr, err := h.svc.RejectRoleRequest(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}

// --- Settings ---

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var input admin.UpdateSettingsDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	settings, err := h.svc.UpdateSettings(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "update", "settings", "1", nil, settings, "system settings updated", h.audit)
	c.JSON(http.StatusOK, settings)
}

// --- Audit trail ---

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid limit parameter"})
			return
		}
		limit = parsed
	}

	logs, err := h.svc.ListAuditLogs(limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
