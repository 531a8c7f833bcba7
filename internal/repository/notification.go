package repository

import (
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	CreateNotification(n *notification.Notification) error
	ListNotificationsForUser(userID uint) ([]notification.Notification, error)
	ListUnreadForUser(userID uint, afterID uint) ([]notification.Notification, error)
	MarkRead(id, userID uint) (notification.Notification, error)
	MarkAllRead(userID uint) error

	CreateAssignmentNotification(n *notification.AssignmentNotification) error
	ListAssignmentNotificationsForContractor(contractorID uint) ([]notification.AssignmentNotification, error)
	MarkAssignmentNotificationRead(id, contractorID uint) (notification.AssignmentNotification, error)
	MarkAllAssignmentNotificationsRead(contractorID uint) error

	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{db: db}
}

func (r *DBNotificationRepo) CreateNotification(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *DBNotificationRepo) ListNotificationsForUser(userID uint) ([]notification.Notification, error) {
	var notifications []notification.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

// ListUnreadForUser returns unread rows created after the given id, oldest
// first, so the websocket feed can page forward.
func (r *DBNotificationRepo) ListUnreadForUser(userID uint, afterID uint) ([]notification.Notification, error) {
	var notifications []notification.Notification
	err := r.db.Where("user_id = ? AND is_read = ? AND id > ?", userID, false, afterID).
		Order("id asc").Find(&notifications).Error
	return notifications, err
}

func (r *DBNotificationRepo) MarkRead(id, userID uint) (notification.Notification, error) {
	var n notification.Notification
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return n, err
	}
	n.IsRead = true
	err := r.db.Save(&n).Error
	return n, err
}

func (r *DBNotificationRepo) MarkAllRead(userID uint) error {
	return r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *DBNotificationRepo) CreateAssignmentNotification(n *notification.AssignmentNotification) error {
	return r.db.Create(n).Error
}

func (r *DBNotificationRepo) ListAssignmentNotificationsForContractor(contractorID uint) ([]notification.AssignmentNotification, error) {
	var notifications []notification.AssignmentNotification
	err := r.db.Where("contractor_id = ?", contractorID).
		Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

func (r *DBNotificationRepo) MarkAssignmentNotificationRead(id, contractorID uint) (notification.AssignmentNotification, error) {
	var n notification.AssignmentNotification
	if err := r.db.Where("id = ? AND contractor_id = ?", id, contractorID).First(&n).Error; err != nil {
		return n, err
	}
	n.IsRead = true
	err := r.db.Save(&n).Error
	return n, err
}

func (r *DBNotificationRepo) MarkAllAssignmentNotificationsRead(contractorID uint) error {
	return r.db.Model(&notification.AssignmentNotification{}).
		Where("contractor_id = ? AND is_read = ?", contractorID, false).
		Update("is_read", true).Error
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{db: tx}
}
