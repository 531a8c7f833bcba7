package feedback

import "time"

type CreateCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

type CommentRead struct {
	ID        uint      `json:"id"`
	IssueID   uint      `json:"issue_id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRatingDTO struct {
	Score   int     `json:"score" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

type CreateSurveyDTO struct {
	IssueID           *uint   `json:"issue_id,omitempty"`
	SatisfactionLevel string  `json:"satisfaction_level" binding:"required"`
	IssueCategory     string  `json:"issue_category" binding:"required"`
	Description       string  `json:"description" binding:"required"`
	Suggestions       *string `json:"suggestions,omitempty"`
	ContactPreference string  `json:"contact_preference"`
}

// SurveyStats is the admin/manager aggregate view.
type SurveyStats struct {
	Total          int64            `json:"total"`
	ByLevel        map[string]int64 `json:"by_level"`
	ByCategory     map[string]int64 `json:"by_category"`
	WantContact    int64            `json:"want_contact"`
	RecentThisWeek int64            `json:"recent_this_week"`
}
