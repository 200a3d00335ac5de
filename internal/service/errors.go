package service

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("item belongs to another user")

	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUnknownUser   = errors.New("account does not exist")
	ErrWrongPassword = errors.New("incorrect password")

	ErrTitleTaken = errors.New("an item with this title already exists")
)
