package repository

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(u *user.User) error
	GetUserByID(id uint) (user.User, error)
	GetUserByEmail(email string) (user.User, error)
	ListUsers(search *string, roleID *uint) ([]user.User, error)
	UpdateUser(u *user.User) error
	DeleteUser(id uint) error
	CountUsers() (int64, error)
	CountUsersByRole() (map[string]int64, error)
	CountRecentUsers(days int) (int64, error)

	GetRoleByID(id uint) (user.Role, error)
	GetRoleByName(name string) (user.Role, error)
	ListRoles() ([]user.Role, error)
	CreateRole(r *user.Role) error
	UpdateRole(r *user.Role) error
	DeleteRole(id uint) error
	CountUsersWithRole(roleID uint) (int64, error)

	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{db: db}
}

func (r *DBUserRepo) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *DBUserRepo) GetUserByID(id uint) (user.User, error) {
	var u user.User
	err := r.db.Preload("Role").First(&u, id).Error
	return u, err
}

func (r *DBUserRepo) GetUserByEmail(email string) (user.User, error) {
	var u user.User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return u, err
}

func (r *DBUserRepo) ListUsers(search *string, roleID *uint) ([]user.User, error) {
	q := r.db.Preload("Role")
	if search != nil && *search != "" {
		like := "%" + *search + "%"
		q = q.Where("full_name LIKE ? OR email LIKE ?", like, like)
	}
	if roleID != nil {
		q = q.Where("role_id = ?", *roleID)
	}
	var users []user.User
	err := q.Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return r.db.Delete(&user.User{}, id).Error
}

func (r *DBUserRepo) CountUsers() (int64, error) {
	var n int64
	err := r.db.Model(&user.User{}).Count(&n).Error
	return n, err
}

func (r *DBUserRepo) CountUsersByRole() (map[string]int64, error) {
	type row struct {
		Name  string
		Count int64
	}
	var rows []row
	err := r.db.Model(&user.User{}).
		Select("roles.name AS name, COUNT(users.id) AS count").
		Joins("JOIN roles ON roles.id = users.role_id").
		Group("roles.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Count
	}
	return out, nil
}

func (r *DBUserRepo) CountRecentUsers(days int) (int64, error) {
	var n int64
	cutoff := time.Now().AddDate(0, 0, -days)
	err := r.db.Model(&user.User{}).Where("created_at >= ?", cutoff).Count(&n).Error
	return n, err
}

func (r *DBUserRepo) GetRoleByID(id uint) (user.Role, error) {
	var role user.Role
	err := r.db.First(&role, id).Error
	return role, err
}

func (r *DBUserRepo) GetRoleByName(name string) (user.Role, error) {
	var role user.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	return role, err
}

func (r *DBUserRepo) ListRoles() ([]user.Role, error) {
	var roles []user.Role
	err := r.db.Order("id").Find(&roles).Error
	return roles, err
}

func (r *DBUserRepo) CreateRole(role *user.Role) error {
	return r.db.Create(role).Error
}

func (r *DBUserRepo) UpdateRole(role *user.Role) error {
	return r.db.Save(role).Error
}

func (r *DBUserRepo) DeleteRole(id uint) error {
	return r.db.Delete(&user.Role{}, id).Error
}

func (r *DBUserRepo) CountUsersWithRole(roleID uint) (int64, error) {
	var n int64
	err := r.db.Model(&user.User{}).Where("role_id = ?", roleID).Count(&n).Error
	return n, err
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{db: tx}
}
