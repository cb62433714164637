package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyReply   = errors.New("model returned empty reply")
)
