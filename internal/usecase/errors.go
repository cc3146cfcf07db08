package usecase

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInvalidStatus    = errors.New("invalid reading status")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 10")
)
