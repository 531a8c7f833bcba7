package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// bindingErrorMessage turns validator errors into frontend-friendly text.
func bindingErrorMessage(err error) string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return "Invalid input"
	}

	labels := map[string]string{
		"FullName":    "full name",
		"Email":       "email",
		"Password":    "password",
		"OldPassword": "old password",
		"NewPassword": "new password",
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		lbl, ok := labels[fe.StructField()]
		if !ok {
			lbl = strings.ToLower(fe.StructField())
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// Register godoc
// @Summary Tenant registration
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.RegisterDTO true "Registration info"
// @Success 201 {object} response.MessageResponse "User registered successfully"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.RegisterDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if _, err := h.svc.Register(input); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginDTO true "Credentials"
// @Success 200 {object} response.TokenResponse "JWT token and user info"
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	token, err := h.svc.Login(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.svc.GetProfile(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input user.UpdateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	u, err := h.svc.UpdateProfile(uid, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input user.ChangePasswordDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if err := h.svc.ChangePassword(uid, input); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Password changed"})
}

// ListContractors backs the manager's assignment picker.
func (h *UserHandler) ListContractors(c *gin.Context) {
	contractors, err := h.svc.ListContractors()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractors)
}
