package handlers

import (
	"net/http"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/utils"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	svc *application.FeedbackService
}

func NewFeedbackHandler(svc *application.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) AddComment(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	issueID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input feedback.CreateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	comment, err := h.svc.AddComment(uid, issueID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *FeedbackHandler) ListComments(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	issueID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	comments, err := h.svc.ListComments(uid, issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// RateIssue godoc
// @Summary Rate a completed issue
// @Tags feedback
// @Accept json
// @Produce json
// @Success 200 {object} feedback.Rating
// @Failure 409 {object} response.ErrorResponse "Issue is not completed"
// @Router /issues/{id}/rating [post]
func (h *FeedbackHandler) RateIssue(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	issueID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input feedback.CreateRatingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	rating, err := h.svc.RateIssue(uid, issueID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *FeedbackHandler) GetRating(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	issueID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	rating, err := h.svc.GetRating(uid, issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *FeedbackHandler) SubmitSurvey(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input feedback.CreateSurveyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	survey, err := h.svc.SubmitSurvey(uid, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, survey)
}

func (h *FeedbackHandler) ListMySurveys(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	surveys, err := h.svc.ListOwnSurveys(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, surveys)
}

func (h *FeedbackHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.svc.ListSurveys()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, surveys)
}

func (h *FeedbackHandler) SurveyStats(c *gin.Context) {
	stats, err := h.svc.GetSurveyStats()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
