package entity

// Reading statuses for a shelved book. Transitions are free in any direction.
const (
	StatusUnread  = "Unread"
	StatusReading = "Reading"
	StatusRead    = "Read"
)

// ValidStatus reports whether s is one of the three reading statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnread, StatusReading, StatusRead:
		return true
	}
	return false
}

// UserBook ties one user to one catalog book with that user's reading state.
// New shelf rows start Unread with rating 1.
type UserBook struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	BookID string `json:"book_id"`
	Status string `json:"status"`
	Rating *int   `json:"rating,omitempty"`
}

// LibraryEntry is a UserBook joined with its Book for display.
type LibraryEntry struct {
	UserBook
	Book Book `json:"book"`
}
