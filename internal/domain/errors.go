package domain

import "errors"

// Operation outcomes the caller must branch on. Handlers map these to
// HTTP statuses; services return them wrapped or bare, so match with
// errors.Is.
var (
	ErrAlreadyInitialized = errors.New("hotel has already been initialized")
	ErrNotAuthorized      = errors.New("action reserved for the hotel owner")
	ErrNotFound           = errors.New("record not found")
	ErrNoneAvailable      = errors.New("no available rooms currently")
	ErrRoomUnavailable    = errors.New("room is already booked")
	ErrInvalidDateRange   = errors.New("check-out date must be after check-in date")
	ErrAlreadyPaid        = errors.New("reservation has already been paid")
	ErrInvalidPayload     = errors.New("invalid payload")
)
