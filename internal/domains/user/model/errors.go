package model

import "marketplace-backend/internal/shared/apperror"

const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailExists        = "USR002"
	ErrCodeUsernameExists     = "USR003"
	ErrCodeInvalidCredentials = "USR004"
	ErrCodeUserInactive       = "USR005"
	ErrCodeInvalidRequest     = "USR006"
	ErrCodeInvalidStatus      = "USR007"
	ErrCodeWrongPassword      = "USR008"
	ErrCodeNotAccountOwner    = "USR009"
	ErrCodeUserHasListings    = "USR010"
)

var (
	ErrUserNotFound       = apperror.NotFound(ErrCodeUserNotFound, "user not found")
	ErrEmailAlreadyExists = apperror.Conflict(ErrCodeEmailExists, "email already exists")
	ErrUsernameTaken      = apperror.Conflict(ErrCodeUsernameExists, "username already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password
	ErrInvalidCredentials = apperror.Authorization(ErrCodeInvalidCredentials, "invalid username or password")
	ErrUserInactive       = apperror.Authorization(ErrCodeUserInactive, "you're no longer an active user")

	ErrInvalidStatus   = apperror.Validation(ErrCodeInvalidStatus, "status must be active or inactive")
	ErrWrongPassword   = apperror.Validation(ErrCodeWrongPassword, "incorrect old password")
	ErrNotAccountOwner = apperror.Authorization(ErrCodeNotAccountOwner, "you can only change your own password")
	ErrUserHasListings = apperror.Conflict(ErrCodeUserHasListings, "user still owns listings")
)

func NewInvalidRequestError(err error) *apperror.Error {
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Code:    ErrCodeInvalidRequest,
		Message: "invalid request",
		Err:     err,
	}
}
