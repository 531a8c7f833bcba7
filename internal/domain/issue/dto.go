package issue

import "time"

// CreateIssueDTO binds the multipart create form; images are read from the
// request separately by the handler.
type CreateIssueDTO struct {
	Title       string  `form:"title" binding:"required"`
	Description *string `form:"description"`
	Location    *string `form:"location"`
	CategoryID  uint    `form:"category_id" binding:"required"`
}

type UpdateIssueDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	CategoryID  *uint   `json:"category_id,omitempty"`
}

type ChangeStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

type AssignContractorDTO struct {
	ContractorID  uint       `json:"contractor_id" binding:"required"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	PlannedDate   *time.Time `json:"planned_date,omitempty"`
	Message       *string    `json:"message,omitempty"`
}

// ListFilter narrows and orders the tenant's issue listing.
type ListFilter struct {
	Status     *Status    `form:"status"`
	CategoryID *uint      `form:"category_id"`
	Search     *string    `form:"search"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	SortBy     string     `form:"sort_by"`    // created_at | title
	SortOrder  string     `form:"sort_order"` // asc | desc
}
