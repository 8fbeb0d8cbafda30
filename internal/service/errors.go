package service

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrUserNotFound    = errors.New("user not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrNotOwner        = errors.New("quiz session belongs to another user")
	ErrUploadDisabled  = errors.New("image uploads are not configured")
	ErrAuthDisabled    = errors.New("identity provider is not configured")
)
