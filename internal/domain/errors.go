package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ValidationError carries a message meant for the dashboard user.
// It is raised before any request reaches the backend.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// Backend messages for business-rule refusals.
const (
	MessageSlotHasSessions = "slot has sessions"
	MessageRoomHasSessions = "room has sessions"
)

var (
	ErrSlotHasSessions = errors.New(MessageSlotHasSessions)
	ErrRoomHasSessions = errors.New(MessageRoomHasSessions)
)

// BackendMessage is the generic acknowledgement body returned by mutating backend calls.
type BackendMessage struct {
	Message string `json:"message,omitempty"`
}
