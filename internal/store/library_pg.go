package store

import (
	"context"
	"errors"
	"fmt"

	"booklib/internal/entity"
	"booklib/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes mapped to usecase errors.
const (
	pgerrUniqueViolation = "23505"
	pgerrCheckViolation  = "23514"
)

type LibraryPG struct {
	db *pgxpool.Pool
}

func NewLibraryPG(db *pgxpool.Pool) *LibraryPG {
	return &LibraryPG{db: db}
}

// AddBook inserts the catalog row if it does not exist yet and then a shelf
// row for the user, as one transaction. ON CONFLICT DO NOTHING keeps the
// first writer's catalog fields when two users race on the same book.
func (repo *LibraryPG) AddBook(ctx context.Context, userID int64, book entity.Book) (entity.UserBook, error) {
	tx, err := repo.db.Begin(ctx)
	if err != nil {
		return entity.UserBook{}, err
	}
	defer tx.Rollback(ctx)

	const bookSQL = `
		INSERT INTO books (id, title, author, year, image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, bookSQL, book.ID, book.Title, book.Author, book.Year, book.ImageURL); err != nil {
		return entity.UserBook{}, fmt.Errorf("insert book: %w", err)
	}

	const shelfSQL = `
		INSERT INTO user_books (user_id, book_id, status, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, book_id, status, rating
	`
	var ub entity.UserBook
	err = tx.QueryRow(ctx, shelfSQL, userID, book.ID, entity.StatusUnread, 1).
		Scan(&ub.ID, &ub.UserID, &ub.BookID, &ub.Status, &ub.Rating)
	if err != nil {
		return entity.UserBook{}, fmt.Errorf("insert shelf row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.UserBook{}, err
	}
	return ub, nil
}

func (repo *LibraryPG) ListByUser(ctx context.Context, userID int64) ([]entity.LibraryEntry, error) {
	const dataSQL = `
		SELECT ub.id, ub.user_id, ub.book_id, ub.status, ub.rating,
		       b.id, b.title, b.author, b.year, COALESCE(b.image_url, '')
		FROM user_books ub
		JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = $1
	`
	rows, err := repo.db.Query(ctx, dataSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entity.LibraryEntry
	for rows.Next() {
		var e entity.LibraryEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.BookID, &e.Status, &e.Rating,
			&e.Book.ID, &e.Book.Title, &e.Book.Author, &e.Book.Year, &e.Book.ImageURL,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *LibraryPG) UpdateStatus(ctx context.Context, userID int64, bookID string, status string) (entity.UserBook, error) {
	const updateSQL = `
		UPDATE user_books
		SET status = $3
		WHERE user_id = $1 AND book_id = $2
		RETURNING id, user_id, book_id, status, rating
	`
	var ub entity.UserBook
	err := repo.db.QueryRow(ctx, updateSQL, userID, bookID, status).
		Scan(&ub.ID, &ub.UserID, &ub.BookID, &ub.Status, &ub.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.UserBook{}, usecase.ErrNotFound
		}
		return entity.UserBook{}, err
	}
	return ub, nil
}

func (repo *LibraryPG) SetRating(ctx context.Context, userID int64, bookID string, rating int) error {
	const updateSQL = `
		UPDATE user_books
		SET rating = $3
		WHERE user_id = $1 AND book_id = $2
	`
	commandTag, err := repo.db.Exec(ctx, updateSQL, userID, bookID, rating)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrCheckViolation {
			return usecase.ErrRatingOutOfRange
		}
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (repo *LibraryPG) Remove(ctx context.Context, userID int64, bookID string) error {
	const deleteSQL = `
		DELETE FROM user_books
		WHERE user_id = $1 AND book_id = $2
	`
	commandTag, err := repo.db.Exec(ctx, deleteSQL, userID, bookID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
