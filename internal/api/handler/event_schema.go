package handler

import "time"

// --- Requests ---

type createEventRequest struct {
	Title       string     `json:"title"       validate:"required,min=3,max=100"`
	Description string     `json:"description" validate:"required,max=1000"`
	Date        *time.Time `json:"date"        validate:"required"`
	Location    string     `json:"location"    validate:"required,max=200"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=3,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"    validate:"omitempty,max=200"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// --- Responses ---

type userSnippetResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type commentResponse struct {
	ID        string               `json:"id"`
	EventID   string               `json:"eventId"`
	UserID    int64                `json:"userId"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"createdAt"`
	User      *userSnippetResponse `json:"user,omitempty"`
}

type participantResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Date         time.Time             `json:"date"`
	Location     string                `json:"location"`
	UserID       int64                 `json:"userId"`
	Participants []participantResponse `json:"participants"`
	Comments     []commentResponse     `json:"comments"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type eventEnvelope struct {
	Event eventResponse `json:"event"`
}

type eventsEnvelope struct {
	Events []eventResponse `json:"events"`
}

type commentEnvelope struct {
	Comment commentResponse `json:"comment"`
}

type commentsEnvelope struct {
	Comments []commentResponse `json:"comments"`
}

type participantEnvelope struct {
	Participant participantResponse `json:"participant"`
}
