package domain

import "time"

type Role string

const (
	RoleMember  Role = "Member"
	RoleTrainer Role = "Trainer"
	RoleAdmin   Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleTrainer || r == RoleAdmin
}

type User struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
