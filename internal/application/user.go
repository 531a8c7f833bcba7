package application

import (
	"errors"
	"time"

	"github.com/fixtrack/fixtrack/internal/api/middleware"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/response"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tenantRoleName = "Stanar"

// UserService covers registration, login and profile self-service. Directory
// management lives in AdminService.
type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{Repos: repos}
}

// Register creates a tenant account. New accounts always start in the tenant
// role; contractor and manager roles are granted through applications.
func (s *UserService) Register(input user.RegisterDTO) (*user.User, error) {
	settings, err := s.Repos.Admin.GetSettings()
	if err != nil {
		return nil, err
	}
	if !settings.AllowRegistration {
		return nil, ErrRegistrationClosed
	}

	_, err = s.Repos.User.GetUserByEmail(input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.Repos.User.GetRoleByName(tenantRoleName)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		RoleID:       role.ID,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashed),
	}
	if err := s.Repos.User.CreateUser(u); err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

func (s *UserService) Login(input user.LoginDTO) (*response.TokenResponse, error) {
	u, err := s.Repos.User.GetUserByEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(u.ID, u.Email, u.Role.Name, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &response.TokenResponse{
		Token:    token,
		UID:      u.ID,
		FullName: u.FullName,
		Role:     u.Role.Name,
	}, nil
}

func (s *UserService) GetProfile(userID uint) (*user.User, error) {
	u, err := s.Repos.User.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile lets users edit their own contact details. Role changes go
// through the admin directory or the application flow.
func (s *UserService) UpdateProfile(userID uint, input user.UpdateUserDTO) (*user.User, error) {
	if input.RoleID != nil {
		return nil, ErrForbidden
	}

	u, err := s.Repos.User.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != u.Email {
		if _, err := s.Repos.User.GetUserByEmail(*input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u.Email = *input.Email
	}
	if input.FullName != nil {
		u.FullName = *input.FullName
	}
	if input.Phone != nil {
		u.Phone = input.Phone
	}
	if input.Address != nil {
		u.Address = input.Address
	}

	if err := s.Repos.User.UpdateUser(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) ChangePassword(userID uint, input user.ChangePasswordDTO) error {
	u, err := s.Repos.User.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return s.Repos.User.UpdateUser(&u)
}

// ListContractors backs the manager's assignment picker.
func (s *UserService) ListContractors() ([]user.UserRead, error) {
	users, err := s.Repos.User.ListUsers(nil, nil)
	if err != nil {
		return nil, err
	}
	result := make([]user.UserRead, 0)
	for i := range users {
		if users[i].Role.Tag() == user.RoleContractor {
			result = append(result, user.ReadFrom(&users[i]))
		}
	}
	return result, nil
}
