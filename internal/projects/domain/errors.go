package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectFrozen   = errors.New("project is closed and cannot be modified")
	ErrInvalidStatus   = errors.New("invalid task day status")
)
