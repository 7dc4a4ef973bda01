package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/core/ports"
)

// EventHandler handles HTTP requests for events, comments and participation.
// The acting user always comes from the resolved principal, never the body.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /api/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {object}  eventsEnvelope
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.service.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventsEnvelope{Events: toEventResponses(events)})
}

// Get handles GET /api/events/:id.
//
// @Summary      Get an event with enriched comments
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventEnvelope
// @Failure      404  {object}  map[string]any
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventEnvelope{Event: toEventResponse(event)})
}

// Create handles POST /api/events/create.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  eventEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/events/create [post]
func (h *EventHandler) Create(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.service.CreateEvent(c.Request().Context(), p, toCreateEventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, eventEnvelope{Event: toEventResponse(event)})
}

// Update handles PUT /api/events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  eventEnvelope
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.service.UpdateEvent(c.Request().Context(), p, c.Param("id"), toEventUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventEnvelope{Event: toEventResponse(event)})
}

// Delete handles DELETE /api/events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteEvent(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListComments handles GET /api/events/:id/comments.
//
// @Summary      List an event's comments
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  commentsEnvelope
// @Failure      404  {object}  map[string]any
// @Router       /api/events/{id}/comments [get]
func (h *EventHandler) ListComments(c echo.Context) error {
	comments, err := h.service.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentsEnvelope{Comments: toCommentResponses(comments)})
}

// AddComment handles POST /api/events/:id/comment.
//
// @Summary      Comment on an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        id    path      string          true  "Event ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  commentEnvelope
// @Failure      404   {object}  map[string]any
// @Router       /api/events/{id}/comment [post]
func (h *EventHandler) AddComment(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), p, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, commentEnvelope{Comment: toCommentResponse(comment)})
}

// Join handles POST /api/events/:id/participant.
//
// @Summary      Join an event
// @Tags         events
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Event ID"
// @Success      201  {object}  participantEnvelope
// @Failure      400  {object}  map[string]any
// @Router       /api/events/{id}/participant [post]
func (h *EventHandler) Join(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}

	participant, err := h.service.Join(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, participantEnvelope{Participant: toParticipantResponse(participant)})
}

// Leave handles DELETE /api/events/:id/participant.
//
// @Summary      Cancel participation
// @Tags         events
// @Produce      json
// @Security     AuthToken
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  map[string]any
// @Router       /api/events/{id}/participant [delete]
func (h *EventHandler) Leave(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.Leave(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
