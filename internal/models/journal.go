package models

import (
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/sentiment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is a private journaling entry owned by a single user.
// Entries are created once and never updated in place.
type JournalEntry struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    string              `bson:"user_id" json:"userId"`
	Content   string              `bson:"content" json:"content"`
	MoodScore sentiment.MoodScore `bson:"mood_score" json:"moodScore"`
	Date      time.Time           `bson:"date" json:"date"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

// PublicEntry is the shape returned to the owner after a save.
type PublicEntry struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	MoodScore sentiment.MoodScore `json:"moodScore"`
	Date      time.Time           `json:"date"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Public strips the owner id.
func (e JournalEntry) Public() PublicEntry {
	return PublicEntry{
		ID:        e.ID.Hex(),
		Content:   e.Content,
		MoodScore: e.MoodScore,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
}

// MoodPoint is one day of the mood trend.
type MoodPoint struct {
	Date        string  `json:"date"`
	AverageMood float64 `json:"averageMood"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalEntries int64 `json:"totalEntries"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}
