package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/utils"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	svc *application.AssignmentService
}

func NewAssignmentHandler(svc *application.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

func (h *AssignmentHandler) ListMyAssignments(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	assignments, err := h.svc.ListContractorAssignments(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
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

	a, err := h.svc.GetAssignment(uid, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateStatus godoc
// @Summary Report work progress
// @Tags assignments
// @Accept json
// @Produce json
// @Success 200 {object} assignment.Assignment
// @Failure 409 {object} response.ErrorResponse "Invalid state for this operation"
// @Router /assignments/{id}/status [patch]
func (h *AssignmentHandler) UpdateStatus(c *gin.Context) {
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

	var input assignment.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	a, err := h.svc.UpdateAssignmentStatus(uid, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssignmentHandler) Reject(c *gin.Context) {
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

	var input assignment.RejectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if err := h.svc.RejectAssignment(uid, id, input); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Assignment rejected"})
}

func (h *AssignmentHandler) UpdateCost(c *gin.Context) {
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

	var input assignment.UpdateCostDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	a, err := h.svc.UpdateAssignmentCost(uid, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssignmentHandler) UploadImage(c *gin.Context) {
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

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "image file is required"})
		return
	}
	uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read image: " + err.Error()})
		return
	}
	defer closeAll()

	img, err := h.svc.UploadImage(c.Request.Context(), uid, id, uploads[0])
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (h *AssignmentHandler) UploadDocument(c *gin.Context) {
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

	fh, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "document file is required"})
		return
	}
	uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read document: " + err.Error()})
		return
	}
	defer closeAll()

	var docType *string
	if t := c.PostForm("type"); t != "" {
		docType = &t
	}

	doc, err := h.svc.UploadDocument(c.Request.Context(), uid, id, uploads[0], docType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// UploadCompletion accepts the completion report: notes plus work photos and
// an optional warranty file, all in one multipart request.
func (h *AssignmentHandler) UploadCompletion(c *gin.Context) {
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

	var input assignment.CompletionDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	var images []application.Upload
	var warranty *application.Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		var closeAll func()
		images, closeAll, err = openUploads(form.File["images"])
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read images: " + err.Error()})
			return
		}
		defer closeAll()

		if headers := form.File["warranty"]; len(headers) > 0 {
			w, closeWarranty, err := openUploads(headers[:1])
			if err != nil {
				c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read warranty: " + err.Error()})
				return
			}
			defer closeWarranty()
			warranty = &w[0]
		}
	}

	a, err := h.svc.UploadCompletionData(c.Request.Context(), uid, id, input, images, warranty)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
