package assignment

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/user"
)

// Assignment binds one contractor to one issue. The partial unique index on
// issue_id is the enforcement point for "at most one active assignment per
// issue"; the service-level pre-check only exists for a friendlier error.
type Assignment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	IssueID         uint       `gorm:"not null;index:idx_assignments_active_issue,unique,where:status <> 'Odbijeno'" json:"issue_id"`
	ContractorID    uint       `gorm:"not null;index" json:"contractor_id"`
	Status          Status     `gorm:"size:50;not null;default:'Dodijeljeno'" json:"status"`
	EstimatedCost   *float64   `json:"estimated_cost,omitempty"`
	ActualCost      *float64   `json:"actual_cost,omitempty"`
	PlannedDate     *time.Time `json:"planned_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Issue      issue.Issue `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	Contractor user.User   `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Images     []Image     `gorm:"foreignKey:AssignmentID" json:"images"`
	Documents  []Document  `gorm:"foreignKey:AssignmentID" json:"documents"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type Image struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AssignmentID uint   `gorm:"not null;index" json:"assignment_id"`
	ImageURL     string `gorm:"not null" json:"image_url"`
}

func (Image) TableName() string {
	return "assignment_images"
}

type Document struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	AssignmentID uint    `gorm:"not null;index" json:"assignment_id"`
	DocumentURL  string  `gorm:"not null" json:"document_url"`
	Type         *string `gorm:"size:50" json:"type,omitempty"`
}

func (Document) TableName() string {
	return "assignment_documents"
}
