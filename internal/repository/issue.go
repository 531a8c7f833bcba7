package repository

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"gorm.io/gorm"
)

type IssueRepo interface {
	CreateIssue(i *issue.Issue) error
	GetIssueByID(id uint) (issue.Issue, error)
	ListIssuesByTenant(tenantID uint, filter issue.ListFilter) ([]issue.Issue, error)
	ListIssues(filter issue.ListFilter) ([]issue.Issue, error)
	UpdateIssue(i *issue.Issue) error
	UpdateIssueStatus(id uint, status issue.Status) error
	DeleteIssueCascade(id uint) error
	AddIssueImage(img *issue.Image) error

	ListCategories() ([]issue.Category, error)
	GetCategoryByID(id uint) (issue.Category, error)
	CreateCategory(c *issue.Category) error

	CountIssuesByTenant(tenantID uint, statuses []issue.Status) (int64, error)
	CountIssuesByStatus(statuses []issue.Status, since *time.Time) (int64, error)
	ListCompletedIssuesByTenant(tenantID uint) ([]issue.Issue, error)
	ListRecentIssues(limit int) ([]issue.Issue, error)

	WithTx(tx *gorm.DB) IssueRepo
}

type DBIssueRepo struct {
	db *gorm.DB
}

func NewIssueRepo(db *gorm.DB) *DBIssueRepo {
	return &DBIssueRepo{db: db}
}

func (r *DBIssueRepo) CreateIssue(i *issue.Issue) error {
	return r.db.Create(i).Error
}

func (r *DBIssueRepo) GetIssueByID(id uint) (issue.Issue, error) {
	var i issue.Issue
	err := r.db.Preload("Category").Preload("Images").First(&i, id).Error
	return i, err
}

func applyIssueFilter(q *gorm.DB, filter issue.ListFilter) *gorm.DB {
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", filter.To.AddDate(0, 0, 1))
	}

	sortBy := "created_at"
	if filter.SortBy == "title" {
		sortBy = "title"
	}
	order := "desc"
	if filter.SortOrder == "asc" {
		order = "asc"
	}
	return q.Order(sortBy + " " + order)
}

func (r *DBIssueRepo) ListIssuesByTenant(tenantID uint, filter issue.ListFilter) ([]issue.Issue, error) {
	var issues []issue.Issue
	q := r.db.Preload("Category").Preload("Images").Where("tenant_id = ?", tenantID)
	err := applyIssueFilter(q, filter).Find(&issues).Error
	return issues, err
}

func (r *DBIssueRepo) ListIssues(filter issue.ListFilter) ([]issue.Issue, error) {
	var issues []issue.Issue
	q := r.db.Preload("Category").Preload("Images").Preload("Tenant").Preload("Tenant.Role")
	err := applyIssueFilter(q, filter).Find(&issues).Error
	return issues, err
}

func (r *DBIssueRepo) UpdateIssue(i *issue.Issue) error {
	return r.db.Save(i).Error
}

func (r *DBIssueRepo) UpdateIssueStatus(id uint, status issue.Status) error {
	return r.db.Model(&issue.Issue{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteIssueCascade removes the issue together with every dependent row.
// Runs inside the caller's transaction when reached through WithTx.
func (r *DBIssueRepo) DeleteIssueCascade(id uint) error {
	type assignmentRow struct{ ID uint }
	var assignments []assignmentRow
	if err := r.db.Table("assignments").Select("id").Where("issue_id = ?", id).Scan(&assignments).Error; err != nil {
		return err
	}
	for _, a := range assignments {
		if err := r.db.Exec("DELETE FROM assignment_images WHERE assignment_id = ?", a.ID).Error; err != nil {
			return err
		}
		if err := r.db.Exec("DELETE FROM assignment_documents WHERE assignment_id = ?", a.ID).Error; err != nil {
			return err
		}
	}
	if err := r.db.Exec("DELETE FROM assignments WHERE issue_id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.Where("issue_id = ?", id).Delete(&issue.Image{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("issue_id = ?", id).Delete(&feedback.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("issue_id = ?", id).Delete(&feedback.Rating{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("issue_id = ?", id).Delete(&feedback.Survey{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("issue_id = ?", id).Delete(&notification.Notification{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("issue_id = ?", id).Delete(&notification.AssignmentNotification{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&issue.Issue{}, id).Error
}

func (r *DBIssueRepo) AddIssueImage(img *issue.Image) error {
	return r.db.Create(img).Error
}

func (r *DBIssueRepo) ListCategories() ([]issue.Category, error) {
	var categories []issue.Category
	err := r.db.Order("id").Find(&categories).Error
	return categories, err
}

func (r *DBIssueRepo) GetCategoryByID(id uint) (issue.Category, error) {
	var c issue.Category
	err := r.db.First(&c, id).Error
	return c, err
}

func (r *DBIssueRepo) CreateCategory(c *issue.Category) error {
	return r.db.Create(c).Error
}

func (r *DBIssueRepo) CountIssuesByTenant(tenantID uint, statuses []issue.Status) (int64, error) {
	var n int64
	q := r.db.Model(&issue.Issue{}).Where("tenant_id = ?", tenantID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *DBIssueRepo) CountIssuesByStatus(statuses []issue.Status, since *time.Time) (int64, error) {
	var n int64
	q := r.db.Model(&issue.Issue{})
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *DBIssueRepo) ListCompletedIssuesByTenant(tenantID uint) ([]issue.Issue, error) {
	var issues []issue.Issue
	err := r.db.Where("tenant_id = ? AND status = ?", tenantID, issue.StatusDone).Find(&issues).Error
	return issues, err
}

func (r *DBIssueRepo) ListRecentIssues(limit int) ([]issue.Issue, error) {
	var issues []issue.Issue
	err := r.db.Preload("Category").Preload("Tenant").Preload("Tenant.Role").
		Order("created_at desc").Limit(limit).Find(&issues).Error
	return issues, err
}

func (r *DBIssueRepo) WithTx(tx *gorm.DB) IssueRepo {
	if tx == nil {
		return r
	}
	return &DBIssueRepo{db: tx}
}
