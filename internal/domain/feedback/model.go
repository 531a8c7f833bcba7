package feedback

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/user"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IssueID   uint      `gorm:"not null;index" json:"issue_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User user.User `gorm:"foreignKey:UserID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// Rating is one tenant's score for one issue; writes are create-or-update.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IssueID   uint      `gorm:"not null;uniqueIndex:idx_ratings_issue_tenant" json:"issue_id"`
	TenantID  uint      `gorm:"not null;uniqueIndex:idx_ratings_issue_tenant" json:"tenant_id"`
	Score     int       `gorm:"not null" json:"score"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

type Survey struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TenantID          uint      `gorm:"not null;index" json:"tenant_id"`
	IssueID           *uint     `json:"issue_id,omitempty"`
	SatisfactionLevel string    `gorm:"size:50;not null" json:"satisfaction_level"`
	IssueCategory     string    `gorm:"size:50;not null" json:"issue_category"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	Suggestions       *string   `gorm:"type:text" json:"suggestions,omitempty"`
	ContactPreference string    `gorm:"size:10;not null;default:'no'" json:"contact_preference"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Survey) TableName() string {
	return "surveys"
}
