package service

import "errors"

var (
	// ErrNotFound is returned when the addressed listing or message does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a required field is missing or
	// malformed at submission.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden is returned when the acting user may not perform the
	// requested operation on this record.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState is returned when a status transition is not legal
	// from the listing's current status.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidArgument is returned for bad call arguments such as an
	// empty rejection reason or an empty message body.
	ErrInvalidArgument = errors.New("invalid argument")
)
