package usecase_test

import (
	"context"
	"testing"

	"booklib/internal/entity"
	"booklib/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLibraryRepo struct {
	mock.Mock
}

func (m *mockLibraryRepo) AddBook(ctx context.Context, userID int64, book entity.Book) (entity.UserBook, error) {
	args := m.Called(ctx, userID, book)
	return args.Get(0).(entity.UserBook), args.Error(1)
}

func (m *mockLibraryRepo) ListByUser(ctx context.Context, userID int64) ([]entity.LibraryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LibraryEntry), args.Error(1)
}

func (m *mockLibraryRepo) UpdateStatus(ctx context.Context, userID int64, bookID string, status string) (entity.UserBook, error) {
	args := m.Called(ctx, userID, bookID, status)
	return args.Get(0).(entity.UserBook), args.Error(1)
}

func (m *mockLibraryRepo) SetRating(ctx context.Context, userID int64, bookID string, rating int) error {
	args := m.Called(ctx, userID, bookID, rating)
	return args.Error(0)
}

func (m *mockLibraryRepo) Remove(ctx context.Context, userID int64, bookID string) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

var dune = usecase.AddBookInput{
	BookID: "isbn123",
	Title:  "Dune",
	Author: "Herbert",
	Year:   1965,
}

func TestLibraryService_AddToLibrary(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		rating := 1
		repo.On("AddBook", ctx, int64(1), entity.Book{
			ID: "isbn123", Title: "Dune", Author: "Herbert", Year: 1965,
		}).Return(entity.UserBook{
			ID: 7, UserID: 1, BookID: "isbn123", Status: entity.StatusUnread, Rating: &rating,
		}, nil)

		ub, err := s.AddToLibrary(ctx, 1, dune)
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusUnread, ub.Status)
		if assert.NotNil(t, ub.Rating) {
			assert.Equal(t, 1, *ub.Rating)
		}
		repo.AssertExpectations(t)
	})

	t.Run("unauthenticated before any write", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		_, err := s.AddToLibrary(ctx, 0, dune)
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
		repo.AssertNotCalled(t, "AddBook", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing fields rejected before any write", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		_, err := s.AddToLibrary(ctx, 1, usecase.AddBookInput{BookID: "isbn123"})

		var validationErr *usecase.ValidationError
		if assert.ErrorAs(t, err, &validationErr) {
			assert.Len(t, validationErr.Fields, 3) // title, author, year
		}
		repo.AssertNotCalled(t, "AddBook", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLibraryService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid statuses pass through", func(t *testing.T) {
		for _, status := range []string{entity.StatusUnread, entity.StatusReading, entity.StatusRead} {
			repo := new(mockLibraryRepo)
			s := usecase.NewLibraryService(repo)

			repo.On("UpdateStatus", ctx, int64(1), "isbn123", status).
				Return(entity.UserBook{UserID: 1, BookID: "isbn123", Status: status}, nil)

			ub, err := s.UpdateStatus(ctx, 1, "isbn123", status)
			assert.NoError(t, err)
			assert.Equal(t, status, ub.Status)
			repo.AssertExpectations(t)
		}
	})

	t.Run("invalid status rejected before any write", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		_, err := s.UpdateStatus(ctx, 1, "isbn123", "Abandoned")
		assert.ErrorIs(t, err, usecase.ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not shelved", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		repo.On("UpdateStatus", ctx, int64(1), "missing", entity.StatusRead).
			Return(entity.UserBook{}, usecase.ErrNotFound)

		_, err := s.UpdateStatus(ctx, 1, "missing", entity.StatusRead)
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		_, err := s.UpdateStatus(ctx, 0, "isbn123", entity.StatusRead)
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
	})
}

func TestLibraryService_RateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		repo.On("SetRating", ctx, int64(1), "isbn123", 9).Return(nil)

		assert.NoError(t, s.RateBook(ctx, 1, "isbn123", 9))
		repo.AssertExpectations(t)
	})

	t.Run("not shelved is a silent no-op", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		repo.On("SetRating", ctx, int64(1), "missing", 9).Return(usecase.ErrNotFound)

		assert.NoError(t, s.RateBook(ctx, 1, "missing", 9))
	})

	t.Run("out of range surfaces constraint violation", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		repo.On("SetRating", ctx, int64(1), "isbn123", 11).Return(usecase.ErrRatingOutOfRange)

		err := s.RateBook(ctx, 1, "isbn123", 11)
		assert.ErrorIs(t, err, usecase.ErrRatingOutOfRange)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		err := s.RateBook(ctx, 0, "isbn123", 9)
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
		repo.AssertNotCalled(t, "SetRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLibraryService_RemoveFromLibrary(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		repo.On("Remove", ctx, int64(1), "isbn123").Return(nil)

		assert.NoError(t, s.RemoveFromLibrary(ctx, 1, "isbn123"))
	})

	t.Run("not shelved is an error, unlike rating", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		repo.On("Remove", ctx, int64(1), "missing").Return(usecase.ErrNotFound)

		err := s.RemoveFromLibrary(ctx, 1, "missing")
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})
}

func TestLibraryService_ListLibrary(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		_, err := s.ListLibrary(ctx, 0)
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
	})

	t.Run("returns joined entries", func(t *testing.T) {
		repo := new(mockLibraryRepo)
		s := usecase.NewLibraryService(repo)

		entries := []entity.LibraryEntry{{
			UserBook: entity.UserBook{ID: 7, UserID: 1, BookID: "isbn123", Status: entity.StatusReading},
			Book:     entity.Book{ID: "isbn123", Title: "Dune", Author: "Herbert", Year: 1965},
		}}
		repo.On("ListByUser", ctx, int64(1)).Return(entries, nil)

		got, err := s.ListLibrary(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, entries, got)
	})
}
