package notification

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/user"
)

// Actor identifies who triggered a change. Stored as an id plus a role tag so
// provenance stays queryable instead of a free-text label.
type Actor struct {
	UserID uint
	Role   user.RoleTag
	Name   string
}

const (
	TypeNewAssignment       = "new_assignment"
	TypeAssignmentUpdate    = "assignment_update"
	TypeAssignmentCancelled = "assignment_cancelled"
)

// Notification is the tenant-facing durable record of one status change.
// Mutated only to flip IsRead, never deleted except by issue cascade.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	IssueID       *uint     `gorm:"index" json:"issue_id,omitempty"`
	OldStatus     string    `gorm:"size:50" json:"old_status"`
	NewStatus     string    `gorm:"size:50" json:"new_status"`
	ChangedByID   *uint     `json:"changed_by_id,omitempty"`
	ChangedByRole string    `gorm:"size:20" json:"changed_by_role"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// AssignmentNotification is the contractor-facing record carrying the richer
// assignment payload.
type AssignmentNotification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ContractorID uint      `gorm:"not null;index" json:"contractor_id"`
	AssignmentID uint      `gorm:"not null" json:"assignment_id"`
	IssueID      uint      `gorm:"not null" json:"issue_id"`
	Type         string    `gorm:"size:50;not null" json:"type"`
	AssignedBy   string    `gorm:"size:100" json:"assigned_by"`
	Message      *string   `gorm:"type:text" json:"message,omitempty"`
	IsRead       bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AssignmentNotification) TableName() string {
	return "assignment_notifications"
}
