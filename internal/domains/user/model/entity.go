package model

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User account. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"user_id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Status       string    `json:"status" bson:"status"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func IsValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

// UserDTO public profile
type UserDTO struct {
	ID        string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		Status:    u.Status,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
