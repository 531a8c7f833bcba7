package assignment

type UpdateStatusDTO struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}

type RejectDTO struct {
	Reason string `json:"reason" binding:"required"`
}

type UpdateCostDTO struct {
	ActualCost float64 `json:"actual_cost" binding:"required"`
}

// CompletionDTO carries the free-text part of the completion upload; the
// image and warranty files arrive as multipart parts next to it.
type CompletionDTO struct {
	Notes string `form:"notes" binding:"required"`
}
