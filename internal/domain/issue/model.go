package issue

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/user"
)

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "issue_categories"
}

type Issue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	CategoryID  uint      `gorm:"not null" json:"category_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Location    *string   `gorm:"size:255" json:"location,omitempty"`
	Status      Status    `gorm:"size:50;not null;default:'Primljeno'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant   user.User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Category Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []Image   `gorm:"foreignKey:IssueID" json:"images"`
}

func (Issue) TableName() string {
	return "issues"
}

type Image struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	IssueID  uint   `gorm:"not null;index" json:"issue_id"`
	ImageURL string `gorm:"not null" json:"image_url"`
}

func (Image) TableName() string {
	return "issue_images"
}
