package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoRows              = errors.New("no rows for selected report")
	ErrUserNotFound        = errors.New("no user found with this email")
	ErrWrongPassword       = errors.New("incorrect password")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrWeakPassword        = errors.New("password is too weak")
	ErrEmailInUse          = errors.New("email already exists")
	ErrRecentLoginRequired = errors.New("requires recent login")
)
