package usecase

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCarNotFound        = errors.New("car not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCarData     = errors.New("invalid car data")
)
