package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/utils"
	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	svc   *application.IssueService
	audit repository.AuditRepo
}

func NewIssueHandler(svc *application.IssueService, audit repository.AuditRepo) *IssueHandler {
	return &IssueHandler{svc: svc, audit: audit}
}

// openUploads converts multipart file headers into service uploads. The
// returned closer must be called after the service finishes reading.
func openUploads(headers []*multipart.FileHeader) ([]application.Upload, func(), error) {
	uploads := make([]application.Upload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		uploads = append(uploads, application.Upload{
			Reader:      f,
			Size:        fh.Size,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return uploads, closeAll, nil
}

// CreateIssue godoc
// @Summary Report a new issue
// @Tags issues
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} issue.Issue
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Router /issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input issue.CreateIssueDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	var uploads []application.Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		var closeAll func()
		uploads, closeAll, err = openUploads(form.File["images"])
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read images: " + err.Error()})
			return
		}
		defer closeAll()
	}

	i, err := h.svc.CreateIssue(c.Request.Context(), uid, input, uploads)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "issue", strconv.FormatUint(uint64(i.ID), 10), nil, i, "issue reported", h.audit)
	c.JSON(http.StatusCreated, i)
}

func (h *IssueHandler) ListMyIssues(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var filter issue.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid filter: " + err.Error()})
		return
	}

	issues, err := h.svc.ListTenantIssues(uid, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// ListIssues is the manager/admin overview with the same filters as the
// tenant listing.
func (h *IssueHandler) ListIssues(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var filter issue.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid filter: " + err.Error()})
		return
	}

	issues, err := h.svc.ListAllIssues(uid, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

func (h *IssueHandler) GetIssue(c *gin.Context) {
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

	i, err := h.svc.GetIssueFor(uid, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, i)
}

func (h *IssueHandler) UpdateIssue(c *gin.Context) {
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

	var input issue.UpdateIssueDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	i, err := h.svc.UpdateIssue(uid, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, i)
}

func (h *IssueHandler) DeleteIssue(c *gin.Context) {
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

	if err := h.svc.DeleteIssue(uid, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "delete", "issue", strconv.FormatUint(uint64(id), 10), nil, nil, "issue deleted by reporter", h.audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Issue deleted"})
}

func (h *IssueHandler) ChangeStatus(c *gin.Context) {
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

	var input issue.ChangeStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if err := h.svc.ChangeIssueStatus(uid, id, input.Status); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Status updated"})
}

func (h *IssueHandler) ManagerChangeStatus(c *gin.Context) {
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

	var input issue.ChangeStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if err := h.svc.ManagerChangeIssueStatus(uid, id, input.Status); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Status updated"})
}

// AssignContractor godoc
// @Summary Assign a contractor to a received issue
// @Tags issues
// @Accept json
// @Produce json
// @Success 201 {object} assignment.Assignment
// @Failure 409 {object} response.ErrorResponse "Issue already has an active assignment"
// @Router /issues/{id}/assign [post]
func (h *IssueHandler) AssignContractor(c *gin.Context) {
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

	var input issue.AssignContractorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	a, err := h.svc.AssignContractor(uid, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "assignment", strconv.FormatUint(uint64(a.ID), 10), nil, a, "contractor assigned", h.audit)
	c.JSON(http.StatusCreated, a)
}

func (h *IssueHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
