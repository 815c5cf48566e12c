package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrEmptyTaskName     = fmt.Errorf("%w: task name is required", ErrInvalidInput)
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrTickerActive      = errors.New("countdown ticker already active")
	ErrUnavailable       = errors.New("capability unavailable")
)
