package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/audit"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	contractorRoleName = "Izvođač"
	managerRoleName    = "Upravnik"
)

// AdminService covers the user directory, role management, role
// applications, admin notes, system settings and the audit trail. Route-level
// middleware enforces the admin gate; only rules that depend on the caller's
// identity are checked here.
type AdminService struct {
	Repos *repository.Repos
	Store storage.Store
}

func NewAdminService(repos *repository.Repos, store storage.Store) *AdminService {
	return &AdminService{Repos: repos, Store: store}
}

// --- User directory ---

func (s *AdminService) ListUsers(search *string, roleID *uint) ([]user.UserRead, error) {
	users, err := s.Repos.User.ListUsers(search, roleID)
	if err != nil {
		return nil, err
	}
	result := make([]user.UserRead, 0, len(users))
	for i := range users {
		result = append(result, user.ReadFrom(&users[i]))
	}
	return result, nil
}

func (s *AdminService) GetUser(id uint) (*user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AdminService) CreateUser(input user.AdminCreateUserDTO) (*user.User, error) {
	if _, err := s.Repos.User.GetUserByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.Repos.User.GetRoleByID(input.RoleID)
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

func (s *AdminService) UpdateUser(id uint, input user.UpdateUserDTO) (*user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
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
	if input.RoleID != nil {
		role, err := s.Repos.User.GetRoleByID(*input.RoleID)
		if err != nil {
			return nil, ErrRoleNotFound
		}
		u.RoleID = role.ID
		u.Role = role
	}

	if err := s.Repos.User.UpdateUser(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account. Admins cannot delete themselves, so the
// system always keeps at least the caller's account.
func (s *AdminService) DeleteUser(adminID, id uint) error {
	if adminID == id {
		return ErrSelfDelete
	}
	if _, err := s.Repos.User.GetUserByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.Repos.User.DeleteUser(id)
}

func (s *AdminService) GetUserStats() (*user.UserStats, error) {
	total, err := s.Repos.User.CountUsers()
	if err != nil {
		return nil, err
	}
	byRole, err := s.Repos.User.CountUsersByRole()
	if err != nil {
		return nil, err
	}
	recent, err := s.Repos.User.CountRecentUsers(30)
	if err != nil {
		return nil, err
	}
	return &user.UserStats{
		TotalUsers:          total,
		ActiveUsers:         total,
		UsersByRole:         byRole,
		RecentRegistrations: recent,
	}, nil
}

// --- Roles ---

func (s *AdminService) ListRoles() ([]user.Role, error) {
	return s.Repos.User.ListRoles()
}

func (s *AdminService) CreateRole(input user.CreateRoleDTO) (*user.Role, error) {
	if _, err := s.Repos.User.GetRoleByName(input.Name); err == nil {
		return nil, ErrRoleNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	r := &user.Role{Name: input.Name}
	if err := s.Repos.User.CreateRole(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *AdminService) UpdateRole(id uint, input user.UpdateRoleDTO) (*user.Role, error) {
	r, err := s.Repos.User.GetRoleByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != r.Name {
		if _, err := s.Repos.User.GetRoleByName(*input.Name); err == nil {
			return nil, ErrRoleNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		r.Name = *input.Name
	}

	if err := s.Repos.User.UpdateRole(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRole refuses to remove a role that still has members or that the
// caller currently holds.
func (s *AdminService) DeleteRole(adminID, id uint) error {
	if _, err := s.Repos.User.GetRoleByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	caller, err := s.Repos.User.GetUserByID(adminID)
	if err != nil {
		return err
	}
	if caller.RoleID == id {
		return ErrSelfRoleDelete
	}

	count, err := s.Repos.User.CountUsersWithRole(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleInUse
	}
	return s.Repos.User.DeleteRole(id)
}

// --- Notes ---

func (s *AdminService) CreateNote(adminID uint, input admin.CreateNoteDTO) (*admin.Note, error) {
	if _, err := s.Repos.User.GetUserByID(input.TenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	n := &admin.Note{AdminID: adminID, TenantID: input.TenantID, Note: input.Note}
	if err := s.Repos.Admin.CreateNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *AdminService) ListNotesForTenant(tenantID uint) ([]admin.Note, error) {
	return s.Repos.Admin.ListNotesForTenant(tenantID)
}

// --- Role applications ---

func (s *AdminService) applyForRole(ctx context.Context, userID uint, roleName, motivation string, attachment *Upload) (*admin.RoleRequest, error) {
	u, err := s.Repos.User.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	requested, err := s.Repos.User.GetRoleByName(roleName)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	if u.RoleID == requested.ID {
		return nil, ErrAlreadyInRole
	}

	if _, err := s.Repos.Admin.GetPendingRequestForUser(userID); err == nil {
		return nil, ErrPendingApplication
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rr := &admin.RoleRequest{
		UserID:          userID,
		CurrentRoleID:   u.RoleID,
		RequestedRoleID: requested.ID,
		Motivation:      motivation,
		Status:          admin.RequestPending,
	}

	if attachment != nil {
		objectName := fmt.Sprintf("applications/%d/%s%s", userID, uuid.NewString(), filepath.Ext(attachment.Filename))
		url, err := s.Store.Save(ctx, attachment.Reader, attachment.Size, objectName, attachment.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store application attachment: %w", err)
		}
		rr.AttachmentURL = &url
	}

	if err := s.Repos.Admin.CreateRoleRequest(rr); err != nil {
		return nil, err
	}
	rr.RequestedRole = requested
	return rr, nil
}

func (s *AdminService) ApplyForContractor(ctx context.Context, userID uint, input admin.ContractorApplicationDTO, cv *Upload) (*admin.RoleRequest, error) {
	motivation := input.MotivationLetter + "\n\n" + input.Reason
	return s.applyForRole(ctx, userID, contractorRoleName, motivation, cv)
}

func (s *AdminService) ApplyForManager(ctx context.Context, userID uint, input admin.ManagerApplicationDTO) (*admin.RoleRequest, error) {
	motivation := input.MotivationLetter + "\n\n" + input.ManagementExperience + "\n\n" + input.BuildingPlans
	return s.applyForRole(ctx, userID, managerRoleName, motivation, nil)
}

// GetApplicationStatus reports whether the user has an application in flight.
func (s *AdminService) GetApplicationStatus(userID uint) (*admin.ApplicationStatus, error) {
	rr, err := s.Repos.Admin.GetPendingRequestForUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &admin.ApplicationStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	roleName := rr.RequestedRole.Name
	status := rr.Status
	submitted := rr.CreatedAt.Format("2006-01-02")
	return &admin.ApplicationStatus{
		HasPendingApplication: true,
		ApplicationType:       &roleName,
		Status:                &status,
		SubmittedAt:           &submitted,
	}, nil
}

func (s *AdminService) ListRoleRequests(status *string) ([]admin.RoleRequest, error) {
	return s.Repos.Admin.ListRoleRequests(status)
}

// ApproveRoleRequest grants the requested role and closes the request in one
// transaction.
func (s *AdminService) ApproveRoleRequest(requestID uint, input admin.ResolveRequestDTO) (*admin.RoleRequest, error) {
	rr, err := s.Repos.Admin.GetRoleRequestByID(requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if rr.Status != admin.RequestPending {
		return nil, ErrRequestResolved
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		u, err := tx.User.GetUserByID(rr.UserID)
		if err != nil {
			return err
		}
		u.RoleID = rr.RequestedRoleID
		if err := tx.User.UpdateUser(&u); err != nil {
			return err
		}

		rr.Status = admin.RequestApproved
		rr.AdminNotes = input.AdminNotes
		return tx.Admin.UpdateRoleRequest(&rr)
	})
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func (s *AdminService) RejectRoleRequest(requestID uint, input admin.ResolveRequestDTO) (*admin.RoleRequest, error) {
	rr, err := s.Repos.Admin.GetRoleRequestByID(requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if rr.Status != admin.RequestPending {
		return nil, ErrRequestResolved
	}

	rr.Status = admin.RequestRejected
	rr.AdminNotes = input.AdminNotes
	if err := s.Repos.Admin.UpdateRoleRequest(&rr); err != nil {
		return nil, err
	}
	return &rr, nil
}

// --- Settings ---

func (s *AdminService) GetSettings() (*admin.SystemSettings, error) {
	settings, err := s.Repos.Admin.GetSettings()
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *AdminService) UpdateSettings(input admin.UpdateSettingsDTO) (*admin.SystemSettings, error) {
	settings, err := s.Repos.Admin.GetSettings()
	if err != nil {
		return nil, err
	}

	if input.AllowRegistration != nil {
		settings.AllowRegistration = *input.AllowRegistration
	}
	if input.RequireApproval != nil {
		settings.RequireApproval = *input.RequireApproval
	}
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if input.MaintenanceMode != nil {
		settings.MaintenanceMode = *input.MaintenanceMode
	}
	if input.AutoAssignment != nil {
		settings.AutoAssignment = *input.AutoAssignment
	}

	if err := s.Repos.Admin.UpdateSettings(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// --- Audit trail ---

func (s *AdminService) ListAuditLogs(limit int) ([]audit.AuditLog, error) {
	return s.Repos.Audit.ListAuditLogs(limit)
}
