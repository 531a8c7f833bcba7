package user

import (
	"strings"
	"time"
)

// RoleTag is the typed role used for authorization checks. The human-readable
// role name stays in the roles table for display only.
type RoleTag string

const (
	RoleTenant     RoleTag = "tenant"
	RoleManager    RoleTag = "manager"
	RoleContractor RoleTag = "contractor"
	RoleAdmin      RoleTag = "admin"
	RoleUnknown    RoleTag = "unknown"
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// Tag resolves the typed role from the stored name. This is the single place
// where role names are interpreted; services compare tags, never names.
func (r *Role) Tag() RoleTag {
	name := strings.ToLower(r.Name)
	switch {
	case strings.Contains(name, "admin"):
		return RoleAdmin
	case strings.Contains(name, "upravnik"):
		return RoleManager
	case strings.Contains(name, "izvođač") || strings.Contains(name, "izvodjac"):
		return RoleContractor
	case strings.Contains(name, "stanar"):
		return RoleTenant
	}
	return RoleUnknown
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Role Role `gorm:"foreignKey:RoleID" json:"role"`
}

func (User) TableName() string {
	return "users"
}
