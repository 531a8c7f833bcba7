package repository

import (
	"github.com/fixtrack/fixtrack/internal/domain/audit"
	"gorm.io/gorm"
)

type AuditRepo interface {
	CreateAuditLog(log *audit.AuditLog) error
	ListAuditLogs(limit int) ([]audit.AuditLog, error)
	WithTx(tx *gorm.DB) AuditRepo
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *DBAuditRepo {
	return &DBAuditRepo{db: db}
}

func (r *DBAuditRepo) CreateAuditLog(log *audit.AuditLog) error {
	return r.db.Create(log).Error
}

func (r *DBAuditRepo) ListAuditLogs(limit int) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	q := r.db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

func (r *DBAuditRepo) WithTx(tx *gorm.DB) AuditRepo {
	if tx == nil {
		return r
	}
	return &DBAuditRepo{db: tx}
}
