package ports

import (
	"context"

	"github.com/eventhub/platform/internal/core/domain"
)

// EventRepository persists events with their comments and participants.
// Unknown or malformed ids yield domain.ErrEventNotFound.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error)
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	ListComments(ctx context.Context, eventID string) ([]*domain.Comment, error)

	// AddParticipant returns domain.ErrAlreadyParticipant when the user has
	// already joined; RemoveParticipant returns domain.ErrNotParticipant when
	// they have not.
	AddParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
	RemoveParticipant(ctx context.Context, eventID string, userID int64) error
}

// ProfileLookup fetches a user snippet from the service that owns it. A nil
// result means enrichment is unavailable; it is never an error.
type ProfileLookup interface {
	FetchProfile(ctx context.Context, userID int64) *domain.UserSnippet
}
