package repository

import (
	"errors"
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"gorm.io/gorm"
)

type FeedbackRepo interface {
	CreateComment(c *feedback.Comment) error
	ListCommentsForIssue(issueID uint) ([]feedback.Comment, error)

	UpsertRating(issueID, tenantID uint, score int, comment *string) (feedback.Rating, error)
	GetRating(issueID, tenantID uint) (feedback.Rating, error)
	ListRatingsByTenant(tenantID uint) ([]feedback.Rating, error)

	AverageRating() (float64, error)

	CreateSurvey(s *feedback.Survey) error
	ListSurveysByTenant(tenantID uint) ([]feedback.Survey, error)
	ListSurveys() ([]feedback.Survey, error)
	SurveyStats() (feedback.SurveyStats, error)

	WithTx(tx *gorm.DB) FeedbackRepo
}

type DBFeedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) *DBFeedbackRepo {
	return &DBFeedbackRepo{db: db}
}

func (r *DBFeedbackRepo) CreateComment(c *feedback.Comment) error {
	return r.db.Create(c).Error
}

func (r *DBFeedbackRepo) ListCommentsForIssue(issueID uint) ([]feedback.Comment, error) {
	var comments []feedback.Comment
	err := r.db.Preload("User").Where("issue_id = ?", issueID).
		Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *DBFeedbackRepo) UpsertRating(issueID, tenantID uint, score int, comment *string) (feedback.Rating, error) {
	var rating feedback.Rating
	err := r.db.Where("issue_id = ? AND tenant_id = ?", issueID, tenantID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rating = feedback.Rating{IssueID: issueID, TenantID: tenantID, Score: score, Comment: comment}
		return rating, r.db.Create(&rating).Error
	}
	if err != nil {
		return rating, err
	}
	rating.Score = score
	rating.Comment = comment
	return rating, r.db.Save(&rating).Error
}

func (r *DBFeedbackRepo) GetRating(issueID, tenantID uint) (feedback.Rating, error) {
	var rating feedback.Rating
	err := r.db.Where("issue_id = ? AND tenant_id = ?", issueID, tenantID).First(&rating).Error
	return rating, err
}

func (r *DBFeedbackRepo) ListRatingsByTenant(tenantID uint) ([]feedback.Rating, error) {
	var ratings []feedback.Rating
	err := r.db.Where("tenant_id = ?", tenantID).Find(&ratings).Error
	return ratings, err
}

func (r *DBFeedbackRepo) CreateSurvey(s *feedback.Survey) error {
	return r.db.Create(s).Error
}

func (r *DBFeedbackRepo) ListSurveysByTenant(tenantID uint) ([]feedback.Survey, error) {
	var surveys []feedback.Survey
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&surveys).Error
	return surveys, err
}

// AverageRating is 0 while no ratings exist.
func (r *DBFeedbackRepo) AverageRating() (float64, error) {
	var avg *float64
	err := r.db.Model(&feedback.Rating{}).Select("AVG(score)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *DBFeedbackRepo) ListSurveys() ([]feedback.Survey, error) {
	var surveys []feedback.Survey
	err := r.db.Order("created_at desc").Find(&surveys).Error
	return surveys, err
}

func (r *DBFeedbackRepo) SurveyStats() (feedback.SurveyStats, error) {
	stats := feedback.SurveyStats{
		ByLevel:    map[string]int64{},
		ByCategory: map[string]int64{},
	}
	if err := r.db.Model(&feedback.Survey{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var levels []bucket
	if err := r.db.Model(&feedback.Survey{}).
		Select("satisfaction_level AS key, COUNT(id) AS count").
		Group("satisfaction_level").Scan(&levels).Error; err != nil {
		return stats, err
	}
	for _, b := range levels {
		stats.ByLevel[b.Key] = b.Count
	}

	var categories []bucket
	if err := r.db.Model(&feedback.Survey{}).
		Select("issue_category AS key, COUNT(id) AS count").
		Group("issue_category").Scan(&categories).Error; err != nil {
		return stats, err
	}
	for _, b := range categories {
		stats.ByCategory[b.Key] = b.Count
	}

	if err := r.db.Model(&feedback.Survey{}).
		Where("contact_preference = ?", "yes").Count(&stats.WantContact).Error; err != nil {
		return stats, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err := r.db.Model(&feedback.Survey{}).
		Where("created_at >= ?", weekAgo).Count(&stats.RecentThisWeek).Error
	return stats, err
}

func (r *DBFeedbackRepo) WithTx(tx *gorm.DB) FeedbackRepo {
	if tx == nil {
		return r
	}
	return &DBFeedbackRepo{db: tx}
}
