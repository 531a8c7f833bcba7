package repository

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"gorm.io/gorm"
)

type AssignmentRepo interface {
	CreateAssignment(a *assignment.Assignment) error
	GetAssignmentByID(id uint) (assignment.Assignment, error)
	GetActiveAssignmentByIssue(issueID uint) (assignment.Assignment, error)
	ListAssignmentsByContractor(contractorID uint) ([]assignment.Assignment, error)
	UpdateAssignment(a *assignment.Assignment) error
	AddImage(img *assignment.Image) error
	AddDocument(doc *assignment.Document) error
	ListImages(assignmentID uint) ([]assignment.Image, error)
	ListDocuments(assignmentID uint) ([]assignment.Document, error)

	CountAssignmentsByContractor(contractorID uint) (int64, error)
	CountAssignmentsByContractorAndIssueStatus(contractorID uint, statuses []string, since *time.Time) (int64, error)

	WithTx(tx *gorm.DB) AssignmentRepo
}

type DBAssignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) *DBAssignmentRepo {
	return &DBAssignmentRepo{db: db}
}

func (r *DBAssignmentRepo) CreateAssignment(a *assignment.Assignment) error {
	return r.db.Create(a).Error
}

func (r *DBAssignmentRepo) GetAssignmentByID(id uint) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := r.db.Preload("Issue").Preload("Issue.Category").Preload("Issue.Images").
		Preload("Images").Preload("Documents").First(&a, id).Error
	return a, err
}

func (r *DBAssignmentRepo) GetActiveAssignmentByIssue(issueID uint) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := r.db.Where("issue_id = ? AND status <> ?", issueID, assignment.StatusRejected).First(&a).Error
	return a, err
}

func (r *DBAssignmentRepo) ListAssignmentsByContractor(contractorID uint) ([]assignment.Assignment, error) {
	var assignments []assignment.Assignment
	err := r.db.Preload("Issue").Preload("Issue.Category").Preload("Issue.Images").
		Preload("Issue.Tenant").Preload("Issue.Tenant.Role").
		Where("contractor_id = ?", contractorID).
		Order("created_at desc").Find(&assignments).Error
	return assignments, err
}

func (r *DBAssignmentRepo) UpdateAssignment(a *assignment.Assignment) error {
	return r.db.Save(a).Error
}

func (r *DBAssignmentRepo) AddImage(img *assignment.Image) error {
	return r.db.Create(img).Error
}

func (r *DBAssignmentRepo) AddDocument(doc *assignment.Document) error {
	return r.db.Create(doc).Error
}

func (r *DBAssignmentRepo) ListImages(assignmentID uint) ([]assignment.Image, error) {
	var images []assignment.Image
	err := r.db.Where("assignment_id = ?", assignmentID).Order("id").Find(&images).Error
	return images, err
}

func (r *DBAssignmentRepo) ListDocuments(assignmentID uint) ([]assignment.Document, error) {
	var docs []assignment.Document
	err := r.db.Where("assignment_id = ?", assignmentID).Order("id").Find(&docs).Error
	return docs, err
}

func (r *DBAssignmentRepo) CountAssignmentsByContractor(contractorID uint) (int64, error) {
	var n int64
	err := r.db.Model(&assignment.Assignment{}).
		Where("contractor_id = ?", contractorID).Count(&n).Error
	return n, err
}

func (r *DBAssignmentRepo) CountAssignmentsByContractorAndIssueStatus(contractorID uint, statuses []string, since *time.Time) (int64, error) {
	var n int64
	q := r.db.Model(&assignment.Assignment{}).
		Joins("JOIN issues ON issues.id = assignments.issue_id").
		Where("assignments.contractor_id = ?", contractorID)
	if len(statuses) > 0 {
		q = q.Where("issues.status IN ?", statuses)
	}
	if since != nil {
		q = q.Where("issues.created_at >= ?", *since)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *DBAssignmentRepo) WithTx(tx *gorm.DB) AssignmentRepo {
	if tx == nil {
		return r
	}
	return &DBAssignmentRepo{db: tx}
}
