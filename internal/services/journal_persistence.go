package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const journalCollection = "journals"

// Sort keys accepted by List, mapped to stored field names.
var sortFields = map[string]string{
	"date":      "date",
	"createdAt": "created_at",
	"moodScore": "mood_score",
}

// ListQuery selects one page of a user's entries, newest first by SortBy.
type ListQuery struct {
	Page   int
	Limit  int
	SortBy string
}

// JournalRepository is the data-access boundary for journal entries.
// Every method takes the owner's id and uses it as a filter predicate.
type JournalRepository interface {
	Insert(ctx context.Context, entry *models.JournalEntry) error
	List(ctx context.Context, userID string, q ListQuery) ([]models.JournalEntry, int64, error)
	Since(ctx context.Context, userID string, since time.Time) ([]models.JournalEntry, error)
	RecentSince(ctx context.Context, userID string, since time.Time, limit int64) ([]models.JournalEntry, error)
	Delete(ctx context.Context, userID string, id primitive.ObjectID) error
}

// JournalStore implements JournalRepository on a MongoDB collection.
type JournalStore struct {
	col *mongo.Collection
}

func NewJournalStore(db *mongo.Database) *JournalStore {
	return &JournalStore{col: db.Collection(journalCollection)}
}

// EnsureIndexes creates the (user_id, date) index used by every query.
// Called on startup after Mongo has connected.
func (s *JournalStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: -1},
		},
		Options: options.Index().SetName("idx_user_date"),
	})
	if err != nil {
		return fmt.Errorf("create journal index: %w", err)
	}
	return nil
}

func (s *JournalStore) Insert(ctx context.Context, entry *models.JournalEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (s *JournalStore) List(ctx context.Context, userID string, q ListQuery) ([]models.JournalEntry, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count journal entries: %w", err)
	}

	field, ok := sortFields[q.SortBy]
	if !ok {
		field = sortFields["date"]
	}
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Page-1) * int64(q.Limit)).
		SetLimit(int64(q.Limit))

	entries, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Since returns entries dated on or after since, oldest first.
func (s *JournalStore) Since(ctx context.Context, userID string, since time.Time) ([]models.JournalEntry, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return s.find(ctx, filter, opts)
}

// RecentSince returns at most limit entries dated on or after since, newest first.
func (s *JournalStore) RecentSince(ctx context.Context, userID string, since time.Time, limit int64) ([]models.JournalEntry, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, filter, opts)
}

// Delete removes the entry only when both id and owner match.
func (s *JournalStore) Delete(ctx context.Context, userID string, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *JournalStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.JournalEntry, error) {
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find journal entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode journal entries: %w", err)
	}
	return entries, nil
}
