package notification

import "time"

// NotificationRead joins in the issue title for display.
type NotificationRead struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	IssueID       *uint     `json:"issue_id,omitempty"`
	IssueTitle    *string   `json:"issue_title,omitempty"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedByID   *uint     `json:"changed_by_id,omitempty"`
	ChangedByRole string    `json:"changed_by_role"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssignmentNotificationRead enriches the record with issue details the
// contractor UI renders directly.
type AssignmentNotificationRead struct {
	ID               uint    `json:"id"`
	AssignmentID     uint    `json:"assignment_id"`
	IssueID          uint    `json:"issue_id"`
	IssueTitle       string  `json:"issue_title"`
	IssueDescription *string `json:"issue_description,omitempty"`
	IssueLocation    *string `json:"issue_location,omitempty"`
	Category         *string `json:"category,omitempty"`
	AssignedBy       string  `json:"assigned_by"`
	AssignedAt       string  `json:"assigned_at"`
	IsRead           bool    `json:"is_read"`
	Type             string  `json:"type"`
	Message          *string `json:"message,omitempty"`
}
