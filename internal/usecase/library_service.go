package usecase

import (
	"booklib/internal/entity"
	"context"
	"errors"
	"strings"
)

// AddBookInput carries the catalog fields the client resolved via search.
// All fields except ImageURL are required.
type AddBookInput struct {
	BookID   string
	Title    string
	Author   string
	Year     int
	ImageURL string
}

// FieldError is a single invalid-input finding.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates FieldErrors so handlers can map them to a 400
// with per-field details.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// ValidateAddBookInput checks that every required catalog field is present.
// Pure function, no storage access.
func ValidateAddBookInput(in AddBookInput) []FieldError {
	var fields []FieldError
	if strings.TrimSpace(in.BookID) == "" {
		fields = append(fields, FieldError{Field: "book_id", Message: "book_id is required"})
	}
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(in.Author) == "" {
		fields = append(fields, FieldError{Field: "author", Message: "author is required"})
	}
	if in.Year == 0 {
		fields = append(fields, FieldError{Field: "year", Message: "year is required"})
	}
	return fields
}

// LibraryService implements the shelf operations. Every operation requires
// an authenticated user up front; userID 0 means "no identity".
type LibraryService struct {
	libraryRepo LibraryRepository
}

func NewLibraryService(libraryRepo LibraryRepository) *LibraryService {
	return &LibraryService{libraryRepo: libraryRepo}
}

// AddToLibrary shelves a book for the user, creating the catalog row first
// if this is the first time anyone adds it. Repeated calls for the same book
// create additional shelf rows; the catalog fields of later calls are
// ignored.
func (s *LibraryService) AddToLibrary(ctx context.Context, userID int64, in AddBookInput) (entity.UserBook, error) {
	if userID == 0 {
		return entity.UserBook{}, ErrUnauthenticated
	}
	if fields := ValidateAddBookInput(in); len(fields) > 0 {
		return entity.UserBook{}, &ValidationError{Fields: fields}
	}

	book := entity.Book{
		ID:       in.BookID,
		Title:    in.Title,
		Author:   in.Author,
		Year:     in.Year,
		ImageURL: in.ImageURL,
	}
	return s.libraryRepo.AddBook(ctx, userID, book)
}

// ListLibrary returns every shelf row the user owns. No ordering guarantee.
func (s *LibraryService) ListLibrary(ctx context.Context, userID int64) ([]entity.LibraryEntry, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.libraryRepo.ListByUser(ctx, userID)
}

// UpdateStatus moves the user's copy of a book to the given reading status.
func (s *LibraryService) UpdateStatus(ctx context.Context, userID int64, bookID string, status string) (entity.UserBook, error) {
	if userID == 0 {
		return entity.UserBook{}, ErrUnauthenticated
	}
	if !entity.ValidStatus(status) {
		return entity.UserBook{}, ErrInvalidStatus
	}
	return s.libraryRepo.UpdateStatus(ctx, userID, bookID, status)
}

// RateBook records a rating for the user's copy of a book. Rating a book the
// user has not shelved is a silent no-op; the range check stays in the
// storage layer.
func (s *LibraryService) RateBook(ctx context.Context, userID int64, bookID string, rating int) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	err := s.libraryRepo.SetRating(ctx, userID, bookID, rating)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// RemoveFromLibrary deletes the user's shelf row for a book. Not idempotent:
// removing a book that is not shelved returns ErrNotFound.
func (s *LibraryService) RemoveFromLibrary(ctx context.Context, userID int64, bookID string) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	return s.libraryRepo.Remove(ctx, userID, bookID)
}
