package croprec

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("crop recommendation service not configured")
	ErrUnavailable   = errors.New("crop recommendation service unavailable")
)

// RejectedError is returned when the model service answers success:false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "crop recommendation rejected"
	}
	return "crop recommendation rejected: " + e.Message
}

// StatusError is an unexpected HTTP status from the model service.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("crop recommendation upstream status %d", e.Status)
}

func (e *StatusError) temporary() bool {
	return e.Status >= 500 || e.Status == 429
}
