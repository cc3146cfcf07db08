package usecase

import (
	"booklib/internal/entity"
	"context"
)

// LibraryRepository is the storage contract for a user's shelf. Each method
// runs as one transaction; lookups are always scoped to the owning user.
type LibraryRepository interface {
	// Insert the book if it is not in the catalog yet (first writer wins),
	// then insert a fresh shelf row for it. Both in a single transaction.
	AddBook(ctx context.Context, userID int64, book entity.Book) (entity.UserBook, error)

	// All shelf rows for the user, joined with their catalog books.
	ListByUser(ctx context.Context, userID int64) ([]entity.LibraryEntry, error)

	// Set the reading status for (user, book). ErrNotFound when the user
	// has not shelved the book.
	UpdateStatus(ctx context.Context, userID int64, bookID string, status string) (entity.UserBook, error)

	// Set the rating for (user, book). ErrNotFound when the user has not
	// shelved the book, ErrRatingOutOfRange when the value violates the
	// rating check constraint.
	SetRating(ctx context.Context, userID int64, bookID string, rating int) error

	// Delete the shelf row for (user, book). ErrNotFound when absent.
	Remove(ctx context.Context, userID int64, bookID string) error
}
