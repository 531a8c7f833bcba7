package repository

import (
	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"gorm.io/gorm"
)

type AdminRepo interface {
	CreateNote(n *admin.Note) error
	ListNotesForTenant(tenantID uint) ([]admin.Note, error)

	CreateRoleRequest(rr *admin.RoleRequest) error
	GetRoleRequestByID(id uint) (admin.RoleRequest, error)
	GetPendingRequestForUser(userID uint) (admin.RoleRequest, error)
	ListRoleRequests(status *string) ([]admin.RoleRequest, error)
	UpdateRoleRequest(rr *admin.RoleRequest) error

	GetSettings() (admin.SystemSettings, error)
	UpdateSettings(s *admin.SystemSettings) error

	WithTx(tx *gorm.DB) AdminRepo
}

type DBAdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *DBAdminRepo {
	return &DBAdminRepo{db: db}
}

func (r *DBAdminRepo) CreateNote(n *admin.Note) error {
	return r.db.Create(n).Error
}

func (r *DBAdminRepo) ListNotesForTenant(tenantID uint) ([]admin.Note, error) {
	var notes []admin.Note
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&notes).Error
	return notes, err
}

func (r *DBAdminRepo) CreateRoleRequest(rr *admin.RoleRequest) error {
	return r.db.Create(rr).Error
}

func (r *DBAdminRepo) GetRoleRequestByID(id uint) (admin.RoleRequest, error) {
	var rr admin.RoleRequest
	err := r.db.Preload("User").Preload("User.Role").Preload("RequestedRole").First(&rr, id).Error
	return rr, err
}

func (r *DBAdminRepo) GetPendingRequestForUser(userID uint) (admin.RoleRequest, error) {
	var rr admin.RoleRequest
	err := r.db.Preload("RequestedRole").
		Where("user_id = ? AND status = ?", userID, admin.RequestPending).First(&rr).Error
	return rr, err
}

func (r *DBAdminRepo) ListRoleRequests(status *string) ([]admin.RoleRequest, error) {
	q := r.db.Preload("User").Preload("User.Role").Preload("RequestedRole")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []admin.RoleRequest
	err := q.Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (r *DBAdminRepo) UpdateRoleRequest(rr *admin.RoleRequest) error {
	return r.db.Save(rr).Error
}

// GetSettings returns the singleton row, creating defaults on first call.
func (r *DBAdminRepo) GetSettings() (admin.SystemSettings, error) {
	var s admin.SystemSettings
	err := r.db.First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = admin.SystemSettings{
			AllowRegistration:  true,
			RequireApproval:    true,
			EmailNotifications: true,
		}
		return s, r.db.Create(&s).Error
	}
	return s, err
}

func (r *DBAdminRepo) UpdateSettings(s *admin.SystemSettings) error {
	return r.db.Save(s).Error
}

func (r *DBAdminRepo) WithTx(tx *gorm.DB) AdminRepo {
	if tx == nil {
		return r
	}
	return &DBAdminRepo{db: tx}
}
