package domain

import "time"

// UserSnippet is a partial copy of a user owned by the auth service. It is
// fetched at read time and may be stale.
type UserSnippet struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type Event struct {
	ID           string
	Title        string
	Description  string
	Date         time.Time
	Location     string
	UserID       int64
	Participants []*Participant
	Comments     []*Comment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnedBy reports whether p may modify e.
func (e *Event) OwnedBy(p Principal) bool {
	return p.IsAdmin() || (p.Authenticated() && e.UserID == p.UserID)
}

type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
}

type Comment struct {
	ID        string
	EventID   string
	UserID    int64
	Content   string
	CreatedAt time.Time
	// User is filled by enrichment and left nil when the lookup failed.
	User *UserSnippet
}

type Participant struct {
	ID        string
	EventID   string
	UserID    int64
	CreatedAt time.Time
}
