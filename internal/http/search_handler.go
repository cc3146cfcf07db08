package http

import (
	"context"
	"net/http"
	"strconv"

	"booklib/internal/httpx"
	"booklib/internal/platform/openlibrary"
)

// CatalogSearcher is the slice of the Open Library client the search
// endpoint needs.
type CatalogSearcher interface {
	SearchBooks(ctx context.Context, query string, limit int) (*openlibrary.SearchResponse, error)
}

type SearchHandler struct {
	searcher CatalogSearcher
}

func NewSearchHandler(searcher CatalogSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

type searchResult struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
	ImageURL string `json:"image_url,omitempty"`
}

// @Summary Search catalog
// @Description Free-text search against the external book catalog
// @Tags search
// @Produce json
// @Security Bearer
// @Param q query string true "Query text"
// @Param limit query int false "Max results" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter q is required", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	res, err := h.searcher.SearchBooks(r.Context(), query, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog search failed", nil)
		return
	}

	results := make([]searchResult, 0, len(res.Docs))
	for _, doc := range res.Docs {
		// Docs without a title or author cannot become catalog rows.
		if doc.Title == "" || doc.Author() == "" {
			continue
		}
		results = append(results, searchResult{
			BookID:   doc.CatalogID(),
			Title:    doc.Title,
			Author:   doc.Author(),
			Year:     doc.FirstPublishYear,
			ImageURL: doc.CoverURL(),
		})
	}

	httpx.JSONSuccess(w, results, map[string]interface{}{
		"total": res.NumFound,
	})
}
