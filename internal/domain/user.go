package domain

import "time"

// Role values as written by the account-approval flow. Production data contains
// both "Admin" and "admin" for supervisors; IsAdminRole accepts both. Do not
// collapse the variants on write without a data migration — the fan-out query
// depends on matching the raw values.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// AdminRoleVariants lists every raw role string that counts as a supervisor.
var AdminRoleVariants = []string{"Admin", "admin"}

// IsAdminRole reports whether the raw role string marks a supervisor.
func IsAdminRole(role string) bool {
	for _, v := range AdminRoleVariants {
		if role == v {
			return true
		}
	}
	return false
}

type User struct {
	UserID         string     `json:"id" dynamodbav:"user_id"`
	Email          string     `json:"email" dynamodbav:"email"`
	FirstName      string     `json:"firstName" dynamodbav:"firstName"`
	LastName       string     `json:"lastName" dynamodbav:"lastName"`
	Role           string     `json:"role" dynamodbav:"role"`
	Phone          *string    `json:"phone,omitempty" dynamodbav:"phone"`
	AssignedStores []string   `json:"assignedStores,omitempty" dynamodbav:"assignedStores"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	Enable         int        `json:"enable" dynamodbav:"enable"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// DisplayName renders the user's name the way notification messages expect:
// "first last" when both parts are present, else firstName, else email.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

type CreateUserRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName"`
	Role           string   `json:"role"`
	Password       string   `json:"password" validate:"omitempty,min=8,max=72"`
	Phone          *string  `json:"phone"`
	AssignedStores []string `json:"assignedStores"`
}

type UpdateUserRequest struct {
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	Role           *string   `json:"role"`
	Phone          *string   `json:"phone"`
	AssignedStores *[]string `json:"assignedStores"`
	Enable         *int      `json:"enable"` // 1 = enabled, 0 = disabled
}

type InviteUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
