package admin

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/user"
)

type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   uint      `gorm:"not null" json:"admin_id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Note) TableName() string {
	return "admin_notes"
}

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// RoleRequest is a user's application for the contractor or manager role.
// At most one pending request per user at a time.
type RoleRequest struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	CurrentRoleID   uint      `gorm:"not null" json:"current_role_id"`
	RequestedRoleID uint      `gorm:"not null" json:"requested_role_id"`
	Motivation      string    `gorm:"type:text;not null" json:"motivation"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	AdminNotes      *string   `gorm:"type:text" json:"admin_notes,omitempty"`
	AttachmentURL   *string   `json:"attachment_url,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User          user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RequestedRole user.Role `gorm:"foreignKey:RequestedRoleID" json:"requested_role,omitempty"`
}

func (RoleRequest) TableName() string {
	return "role_requests"
}

// SystemSettings is a singleton row; Get creates it with defaults on first use.
type SystemSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AllowRegistration  bool      `gorm:"not null;default:true" json:"allow_registration"`
	RequireApproval    bool      `gorm:"not null;default:true" json:"require_approval"`
	EmailNotifications bool      `gorm:"not null;default:true" json:"email_notifications"`
	MaintenanceMode    bool      `gorm:"not null;default:false" json:"maintenance_mode"`
	AutoAssignment     bool      `gorm:"not null;default:false" json:"auto_assignment"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}
