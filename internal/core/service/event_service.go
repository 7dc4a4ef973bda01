package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/core/ports"
)

const defaultLookupConcurrency = 8

// EventService implements event management. Reads that return comments enrich
// them with commenter profiles owned by the auth service.
type EventService struct {
	repo        ports.EventRepository
	profiles    ports.ProfileLookup
	concurrency int
	log         zerolog.Logger
}

// NewEventService returns an EventService. concurrency bounds the number of
// in-flight profile lookups per read.
func NewEventService(
	repo ports.EventRepository,
	profiles ports.ProfileLookup,
	concurrency int,
	log zerolog.Logger,
) *EventService {
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &EventService{
		repo:        repo,
		profiles:    profiles,
		concurrency: concurrency,
		log:         log,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, actor domain.Principal, in ports.CreateEventInput) (*domain.Event, error) {
	now := time.Now().UTC()
	event, err := s.repo.Create(ctx, &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        in.Date.UTC(),
		Location:    in.Location,
		UserID:      actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", event.ID).Int64("user_id", actor.UserID).Msg("event created")
	return event, nil
}

// UpdateEvent is allowed for the event owner and for admins.
func (s *EventService) UpdateEvent(ctx context.Context, actor domain.Principal, id string, update domain.EventUpdate) (*domain.Event, error) {
	if err := s.ensureOwner(ctx, actor, id); err != nil {
		return nil, err
	}
	if update.Date != nil {
		d := update.Date.UTC()
		update.Date = &d
	}
	return s.repo.Update(ctx, id, update)
}

// DeleteEvent is allowed for the event owner and for admins.
func (s *EventService) DeleteEvent(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.ensureOwner(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("event_id", id).Int64("user_id", actor.UserID).Msg("event deleted")
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, event.Comments)
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var all []*domain.Comment
	for _, e := range events {
		all = append(all, e.Comments...)
	}
	s.enrich(ctx, all)
	return events, nil
}

func (s *EventService) AddComment(ctx context.Context, actor domain.Principal, eventID, content string) (*domain.Comment, error) {
	// Surface event-not-found instead of an orphan comment.
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.AddComment(ctx, &domain.Comment{
		EventID:   eventID,
		UserID:    actor.UserID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *EventService) ListComments(ctx context.Context, eventID string) ([]*domain.Comment, error) {
	comments, err := s.repo.ListComments(ctx, eventID)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, comments)
	return comments, nil
}

func (s *EventService) Join(ctx context.Context, actor domain.Principal, eventID string) (*domain.Participant, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.AddParticipant(ctx, &domain.Participant{
		EventID:   eventID,
		UserID:    actor.UserID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *EventService) Leave(ctx context.Context, actor domain.Principal, eventID string) error {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return err
	}
	return s.repo.RemoveParticipant(ctx, eventID, actor.UserID)
}

func (s *EventService) ensureOwner(ctx context.Context, actor domain.Principal, id string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !event.OwnedBy(actor) {
		return domain.ErrNotEventOwner
	}
	return nil
}

// enrich attaches commenter snippets in place. Each distinct user is looked up
// once; lookups run concurrently up to s.concurrency. A failed lookup leaves
// the comment's User nil and never fails the read.
func (s *EventService) enrich(ctx context.Context, comments []*domain.Comment) {
	if len(comments) == 0 || s.profiles == nil {
		return
	}

	ids := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		if c.UserID > 0 {
			ids[c.UserID] = struct{}{}
		}
	}

	var (
		mu       sync.Mutex
		snippets = make(map[int64]*domain.UserSnippet, len(ids))
		g        errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for id := range ids {
		g.Go(func() error {
			snippet := s.profiles.FetchProfile(ctx, id)
			if snippet == nil {
				return nil
			}
			mu.Lock()
			snippets[id] = snippet
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	missing := 0
	for _, c := range comments {
		c.User = snippets[c.UserID]
		if c.User == nil {
			missing++
		}
	}
	if missing > 0 {
		s.log.Debug().Int("comments", len(comments)).Int("unenriched", missing).Msg("profile enrichment incomplete")
	}
}
