package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// RegisterRequest new account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(3, 50),
			validation.Match(usernamePattern).Error("username may contain letters, digits, '_', '.' and '-'"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// LoginRequest username and password login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateStatusRequest administrative activation or deactivation
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(StatusActive, StatusInactive)),
	)
}

// UpdateStatusResponse tells whether the status actually changed
type UpdateStatusResponse struct {
	UserID   string `json:"user_id"`
	Status   string `json:"status"`
	Modified bool   `json:"modified"`
}

// ChangePasswordRequest requires the current password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// UserListResponse all accounts, without credentials
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Total int       `json:"total"`
}

// LoginResponse access token and the logged in profile
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}
