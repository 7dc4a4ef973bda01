package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventhub/platform/internal/core/domain"
)

const (
	eventsCollection       = "events"
	commentsCollection     = "comments"
	participantsCollection = "participants"
)

// EventRepository implements ports.EventRepository using MongoDB. Comments and
// participants live in their own collections keyed by event_id.
type EventRepository struct {
	events       *mongo.Collection
	comments     *mongo.Collection
	participants *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		events:       db.Collection(eventsCollection),
		comments:     db.Collection(commentsCollection),
		participants: db.Collection(participantsCollection),
	}
}

// EnsureIndexes creates the indexes the repository relies on. The unique
// (event_id, user_id) index is what rejects a second join.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.participants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("event_user_unique"),
	}); err != nil {
		return fmt.Errorf("participants index: %w", err)
	}
	if _, err := r.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("event_created"),
	}); err != nil {
		return fmt.Errorf("comments index: %w", err)
	}
	if _, err := r.events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("date"),
	}); err != nil {
		return fmt.Errorf("events index: %w", err)
	}
	return nil
}

// --- Documents ---

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Date        time.Time          `bson:"date"`
	Location    string             `bson:"location"`
	UserID      int64              `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"event_id"`
	UserID    int64              `bson:"user_id"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"created_at"`
}

type participantDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"event_id"`
	UserID    int64              `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date.UTC(),
		Location:    d.Location,
		UserID:      d.UserID,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (d commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		EventID:   d.EventID.Hex(),
		UserID:    d.UserID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (d participantDoc) toDomain() *domain.Participant {
	return &domain.Participant{
		ID:        d.ID.Hex(),
		EventID:   d.EventID.Hex(),
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// eventID parses a hex id; anything unparsable cannot name an event.
func eventID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrEventNotFound
	}
	return oid, nil
}

// --- Events ---

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	doc := eventDoc{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	res, err := r.events.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	created := doc.toDomain()
	created.Comments = []*domain.Comment{}
	created.Participants = []*domain.Participant{}
	return created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := eventID(id)
	if err != nil {
		return nil, err
	}

	var doc eventDoc
	if err := r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	events := []*domain.Event{doc.toDomain()}
	if err := r.attachChildren(ctx, events, []primitive.ObjectID{oid}); err != nil {
		return nil, err
	}
	return events[0], nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	cur, err := r.events.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]*domain.Event, 0, len(docs))
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
		ids = append(ids, d.ID)
	}
	if err := r.attachChildren(ctx, events, ids); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	oid, err := eventID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}

	var doc eventDoc
	err = r.events.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	events := []*domain.Event{doc.toDomain()}
	if err := r.attachChildren(ctx, events, []primitive.ObjectID{oid}); err != nil {
		return nil, err
	}
	return events[0], nil
}

// Delete removes the event, then its comments and participants.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := eventID(id)
	if err != nil {
		return err
	}

	res, err := r.events.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}

	if _, err := r.comments.DeleteMany(ctx, bson.M{"event_id": oid}); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if _, err := r.participants.DeleteMany(ctx, bson.M{"event_id": oid}); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	return nil
}

// --- Comments ---

func (r *EventRepository) AddComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	oid, err := eventID(c.EventID)
	if err != nil {
		return nil, err
	}

	doc := commentDoc{EventID: oid, UserID: c.UserID, Content: c.Content, CreatedAt: c.CreatedAt}
	res, err := r.comments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EventRepository) ListComments(ctx context.Context, id string) ([]*domain.Comment, error) {
	oid, err := eventID(id)
	if err != nil {
		return nil, err
	}

	n, err := r.events.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrEventNotFound
	}

	byEvent, err := r.commentsFor(ctx, []primitive.ObjectID{oid})
	if err != nil {
		return nil, err
	}
	comments := byEvent[oid]
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return comments, nil
}

// --- Participants ---

func (r *EventRepository) AddParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	oid, err := eventID(p.EventID)
	if err != nil {
		return nil, err
	}

	doc := participantDoc{EventID: oid, UserID: p.UserID, CreatedAt: p.CreatedAt}
	res, err := r.participants.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyParticipant
		}
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, id string, userID int64) error {
	oid, err := eventID(id)
	if err != nil {
		return err
	}

	res, err := r.participants.DeleteOne(ctx, bson.M{"event_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotParticipant
	}
	return nil
}

// --- Children ---

// attachChildren loads comments and participants for all events in two
// queries.
func (r *EventRepository) attachChildren(ctx context.Context, events []*domain.Event, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	comments, err := r.commentsFor(ctx, ids)
	if err != nil {
		return err
	}
	participants, err := r.participantsFor(ctx, ids)
	if err != nil {
		return err
	}

	for i, e := range events {
		e.Comments = comments[ids[i]]
		if e.Comments == nil {
			e.Comments = []*domain.Comment{}
		}
		e.Participants = participants[ids[i]]
		if e.Participants == nil {
			e.Participants = []*domain.Participant{}
		}
	}
	return nil
}

func (r *EventRepository) commentsFor(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID][]*domain.Comment, error) {
	cur, err := r.comments.Find(ctx, bson.M{"event_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	out := make(map[primitive.ObjectID][]*domain.Comment, len(ids))
	for _, d := range docs {
		out[d.EventID] = append(out[d.EventID], d.toDomain())
	}
	return out, nil
}

func (r *EventRepository) participantsFor(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID][]*domain.Participant, error) {
	cur, err := r.participants.Find(ctx, bson.M{"event_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find participants: %w", err)
	}

	var docs []participantDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode participants: %w", err)
	}

	out := make(map[primitive.ObjectID][]*domain.Participant, len(ids))
	for _, d := range docs {
		out[d.EventID] = append(out[d.EventID], d.toDomain())
	}
	return out, nil
}
