package handler

import (
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/core/ports"
)

// --- Request → Service input ---

func toCreateEventInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        *req.Date,
		Location:    req.Location,
	}
}

func toEventUpdate(req updateEventRequest) domain.EventUpdate {
	return domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}
}

// --- Domain → HTTP response ---

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date.UTC(),
		Location:     e.Location,
		UserID:       e.UserID,
		Participants: toParticipantResponses(e.Participants),
		Comments:     toCommentResponses(e.Comments),
		CreatedAt:    e.CreatedAt.UTC(),
		UpdatedAt:    e.UpdatedAt.UTC(),
	}
}

func toEventResponses(events []*domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toCommentResponse(c *domain.Comment) commentResponse {
	resp := commentResponse{
		ID:        c.ID,
		EventID:   c.EventID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UTC(),
	}
	if c.User != nil {
		resp.User = &userSnippetResponse{
			ID:      c.User.ID,
			Name:    c.User.Name,
			Surname: c.User.Surname,
			Email:   c.User.Email,
		}
	}
	return resp
}

func toCommentResponses(comments []*domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}

func toParticipantResponse(p *domain.Participant) participantResponse {
	return participantResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func toParticipantResponses(ps []*domain.Participant) []participantResponse {
	out := make([]participantResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toParticipantResponse(p))
	}
	return out
}
