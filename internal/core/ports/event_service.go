package ports

import (
	"context"
	"time"

	"github.com/eventhub/platform/internal/core/domain"
)

type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
}

type EventService interface {
	CreateEvent(ctx context.Context, actor domain.Principal, in CreateEventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, actor domain.Principal, id string, update domain.EventUpdate) (*domain.Event, error)
	DeleteEvent(ctx context.Context, actor domain.Principal, id string) error
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]*domain.Event, error)

	AddComment(ctx context.Context, actor domain.Principal, eventID, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, eventID string) ([]*domain.Comment, error)

	Join(ctx context.Context, actor domain.Principal, eventID string) (*domain.Participant, error)
	Leave(ctx context.Context, actor domain.Principal, eventID string) error
}
