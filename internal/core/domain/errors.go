package domain

import "errors"

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserDetailNotFound    = errors.New("user detail not found")
	ErrAssigneeNotRegistered = errors.New("assignee is not registered")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrSuccessorExists       = errors.New("successor task already exists")
	ErrInvalidFrequency      = errors.New("invalid task frequency")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidUpdateType     = errors.New("invalid update type")
	ErrInvalidIdentityToken  = errors.New("invalid identity token")
	ErrInvalidSessionToken   = errors.New("invalid session token")
	ErrEmptyMessage          = errors.New("empty message")
)
