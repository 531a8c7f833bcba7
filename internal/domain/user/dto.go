package user

import "time"

type RegisterDTO struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserDTO struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	RoleID   *uint   `json:"role_id,omitempty"`
}

// AdminCreateUserDTO is the admin directory create form; unlike public
// registration the role is chosen up front.
type AdminCreateUserDTO struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type CreateRoleDTO struct {
	Name string `json:"name" binding:"required"`
}

type UpdateRoleDTO struct {
	Name *string `json:"name,omitempty"`
}

// UserRead is the directory view with the role name resolved for display.
type UserRead struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	RoleID    uint      `json:"role_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

func ReadFrom(u *User) UserRead {
	return UserRead{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		RoleID:    u.RoleID,
		RoleName:  u.Role.Name,
		CreatedAt: u.CreatedAt,
	}
}

// UserStats is the admin overview of registered accounts.
type UserStats struct {
	TotalUsers          int64            `json:"total_users"`
	ActiveUsers         int64            `json:"active_users"`
	UsersByRole         map[string]int64 `json:"users_by_role"`
	RecentRegistrations int64            `json:"recent_registrations"`
}
