package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"booklib/internal/httpx"
	"booklib/internal/usecase"
)

type LibraryHandler struct {
	service *usecase.LibraryService
}

func NewLibraryHandler(service *usecase.LibraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// parseLibraryPath splits /library/{bookID} and /library/{bookID}/{action}.
// action is "" for the bare book path, "status" or "rating" otherwise.
func parseLibraryPath(path string) (bookID string, action string, ok bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] != "library" || parts[1] == "" {
		return "", "", false
	}
	switch len(parts) {
	case 2:
		return parts[1], "", true
	case 3:
		if parts[2] != "status" && parts[2] != "rating" {
			return "", "", false
		}
		return parts[1], parts[2], true
	default:
		return "", "", false
	}
}

type addBookRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Year     int    `json:"year" validate:"required"`
	ImageURL string `json:"image_url"`
}

// @Summary Add book to library
// @Description Shelve a catalog book for the authenticated user
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param book body addBookRequest true "Catalog book fields"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /library [post]
func (h *LibraryHandler) AddToLibrary(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toDetails(validationErrors))
		return
	}

	userBook, err := h.service.AddToLibrary(r.Context(), httpx.UserIDFrom(r), usecase.AddBookInput{
		BookID:   req.BookID,
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.JSONSuccessCreated(w, userBook)
}

// @Summary List library
// @Description All shelved books of the authenticated user
// @Tags library
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /library [get]
func (h *LibraryHandler) ListLibrary(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListLibrary(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.JSONSuccess(w, entries, map[string]interface{}{
		"total": len(entries),
	})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,reading_status"`
}

// @Summary Update reading status
// @Description Set the reading status of a shelved book
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param bookID path string true "Catalog book ID"
// @Param status body updateStatusRequest true "New status"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /library/{bookID}/status [patch]
func (h *LibraryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, bookID string) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toDetails(validationErrors))
		return
	}

	userBook, err := h.service.UpdateStatus(r.Context(), httpx.UserIDFrom(r), bookID, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.JSONSuccess(w, userBook, nil)
}

type rateBookRequest struct {
	Rating int `json:"rating" validate:"required"`
}

// @Summary Rate book
// @Description Rate a shelved book 1-10. Rating a book that is not shelved
// @Description is a no-op.
// @Tags library
// @Accept json
// @Security Bearer
// @Param bookID path string true "Catalog book ID"
// @Param rating body rateBookRequest true "Rating value"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Router /library/{bookID}/rating [put]
func (h *LibraryHandler) RateBook(w http.ResponseWriter, r *http.Request, bookID string) {
	var req rateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toDetails(validationErrors))
		return
	}

	if err := h.service.RateBook(r.Context(), httpx.UserIDFrom(r), bookID, req.Rating); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// @Summary Remove book from library
// @Description Delete the shelf row for a book. Not idempotent.
// @Tags library
// @Security Bearer
// @Param bookID path string true "Catalog book ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /library/{bookID} [delete]
func (h *LibraryHandler) RemoveFromLibrary(w http.ResponseWriter, r *http.Request, bookID string) {
	if err := h.service.RemoveFromLibrary(r.Context(), httpx.UserIDFrom(r), bookID); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// ServeHTTP routes the /library subtree by method and path shape.
func (h *LibraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.Trim(r.URL.Path, "/") == "library" {
		switch r.Method {
		case http.MethodPost:
			h.AddToLibrary(w, r)
		case http.MethodGet:
			h.ListLibrary(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	bookID, action, ok := parseLibraryPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case action == "status" && r.Method == http.MethodPatch:
		h.UpdateStatus(w, r, bookID)
	case action == "rating" && r.Method == http.MethodPut:
		h.RateBook(w, r, bookID)
	case action == "" && r.Method == http.MethodDelete:
		h.RemoveFromLibrary(w, r, bookID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		details := make([]httpx.ErrorDetail, len(validationErr.Fields))
		for i, f := range validationErr.Fields {
			details[i] = httpx.ErrorDetail{Field: f.Field, Message: f.Message}
		}
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
	case errors.Is(err, usecase.ErrUnauthenticated):
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	case errors.Is(err, usecase.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be one of Unread, Reading, Read", nil)
	case errors.Is(err, usecase.ErrRatingOutOfRange):
		httpx.JSONError(w, http.StatusBadRequest, "CONSTRAINT_VIOLATION", "Rating must be between 1 and 10", nil)
	case errors.Is(err, usecase.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book is not in your library", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
