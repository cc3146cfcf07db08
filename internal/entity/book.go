package entity

// Book is a catalog record. The ID comes from the external catalog
// (Open Library key or ISBN), not from us: a row is created lazily the first
// time any user shelves the book and is never updated afterwards.
type Book struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
	ImageURL string `json:"image_url,omitempty"`
}
