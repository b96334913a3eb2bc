package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/metrics"
	"github.com/AnshRaj112/serenify-journal/internal/models"
	"github.com/AnshRaj112/serenify-journal/internal/sentiment"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	streakWindow = 3 * 24 * time.Hour
	streakLength = 3
)

// NegativeStreakMessage is attached to chatbot replies when a streak is found.
const NegativeStreakMessage = "I notice you've been feeling down for the past few days. This is completely normal, but it might be helpful to reach out for support. Consider talking to a friend, family member, or mental health professional. Remember, you're not alone in this journey."

// RecentEntryFinder is the read the detector needs.
type RecentEntryFinder interface {
	RecentSince(ctx context.Context, userID string, since time.Time, limit int64) ([]models.JournalEntry, error)
}

// PatternResult is the outcome of a streak check.
type PatternResult struct {
	Pattern bool   `json:"pattern"`
	Message string `json:"message,omitempty"`
}

// PatternDetector flags users whose three most recent entries of the last
// three days are all negative.
type PatternDetector struct {
	entries RecentEntryFinder
	clock   clockwork.Clock
	log     zerolog.Logger
}

func NewPatternDetector(entries RecentEntryFinder, clock clockwork.Clock, log zerolog.Logger) *PatternDetector {
	return &PatternDetector{
		entries: entries,
		clock:   clock,
		log:     log.With().Str("component", "pattern_detector").Logger(),
	}
}

// Check never fails: a storage error is logged, counted and reported as no pattern.
// A nil detector reports no pattern.
func (d *PatternDetector) Check(ctx context.Context, userID string) PatternResult {
	if d == nil || d.entries == nil {
		return PatternResult{}
	}
	since := d.clock.Now().Add(-streakWindow)

	recent, err := d.entries.RecentSince(ctx, userID, since, streakLength)
	if err != nil {
		metrics.PatternCheckFailures.Inc()
		d.log.Warn().Err(err).Str("user_id", userID).Msg("negative streak check failed, reporting no pattern")
		return PatternResult{}
	}

	if len(recent) < streakLength {
		return PatternResult{}
	}
	for _, e := range recent[:streakLength] {
		if e.MoodScore != sentiment.Negative {
			return PatternResult{}
		}
	}

	metrics.PatternAlerts.Inc()
	return PatternResult{Pattern: true, Message: NegativeStreakMessage}
}
