package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/metrics"
	"github.com/AnshRaj112/serenify-journal/internal/models"
	"github.com/AnshRaj112/serenify-journal/internal/sentiment"
	"github.com/AnshRaj112/serenify-journal/internal/services"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateJournalRequest struct {
	Content string `json:"content" validate:"required,min=10"`
	Date    string `json:"date"`
}

var journalMessages = fieldMessages{
	"content.required": "Journal content is required",
	"content.min":      "Journal entry must be at least 10 characters long",
}

type CreateJournalResponse struct {
	Message string             `json:"message"`
	Entry   models.PublicEntry `json:"entry"`
}

type ListJournalsResponse struct {
	Entries    []models.JournalEntry `json:"entries"`
	Pagination models.Pagination     `json:"pagination"`
}

type MoodTrendResponse struct {
	MoodTrend []models.MoodPoint `json:"moodTrend"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// parseEntryDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates (UTC midnight).
func parseEntryDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreateJournal scores and saves a new entry for the caller.
func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateJournalRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, validationError(err, journalMessages))
		return
	}

	now := h.clock.Now().UTC()
	date := now
	if d := strings.TrimSpace(req.Date); d != "" {
		parsed, ok := parseEntryDate(d)
		if !ok {
			h.writeError(w, r, apperrors.Validation("Validation failed", apperrors.FieldError{
				Field:   "date",
				Message: "Date must be an ISO 8601 date",
			}))
			return
		}
		date = parsed
	}

	score := sentiment.Score(req.Content)
	entry := &models.JournalEntry{
		UserID:    userID,
		Content:   req.Content,
		MoodScore: score,
		Date:      date,
		CreatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if err := h.journals.Insert(ctx, entry); err != nil {
		h.writeError(w, r, apperrors.Internal("save journal entry", err))
		return
	}
	h.trends.Invalidate(ctx, userID)

	metrics.EntriesCreated.Inc()
	metrics.MoodScores.WithLabelValues("journal", string(score.Category())).Inc()

	writeJSON(w, http.StatusCreated, CreateJournalResponse{
		Message: "Journal entry saved successfully",
		Entry:   entry.Public(),
	})
}

// positiveInt parses s, falling back to def for empty, non-numeric or < 1 values.
func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ListJournals returns one page of the caller's entries, newest first.
func (h *Handler) ListJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page := min(positiveInt(q.Get("page"), services.DefaultPage), services.MaxPage)
	limit := min(positiveInt(q.Get("limit"), services.DefaultLimit), services.MaxLimit)

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	entries, total, err := h.journals.List(ctx, userID, services.ListQuery{
		Page:   page,
		Limit:  limit,
		SortBy: q.Get("sort"),
	})
	if err != nil {
		h.writeError(w, r, apperrors.Internal("list journal entries", err))
		return
	}

	writeJSON(w, http.StatusOK, ListJournalsResponse{
		Entries:    entries,
		Pagination: services.Paginate(page, limit, total),
	})
}

// MoodTrend returns the caller's daily average mood over the last seven days.
func (h *Handler) MoodTrend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if trend, hit := h.trends.Get(ctx, userID); hit {
		writeJSON(w, http.StatusOK, MoodTrendResponse{MoodTrend: trend})
		return
	}

	entries, err := h.journals.Since(ctx, userID, h.clock.Now().Add(-trendWindow))
	if err != nil {
		h.writeError(w, r, apperrors.Internal("load mood trend", err))
		return
	}

	trend := services.BuildMoodTrend(entries)
	h.trends.Set(ctx, userID, trend)
	writeJSON(w, http.StatusOK, MoodTrendResponse{MoodTrend: trend})
}

// DeleteJournal removes one of the caller's entries. Unknown, malformed and
// foreign ids all answer 404.
func (h *Handler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, apperrors.NotFound("Journal entry not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if err := h.journals.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, r, apperrors.NotFound("Journal entry not found"))
			return
		}
		h.writeError(w, r, apperrors.Internal("delete journal entry", err))
		return
	}
	h.trends.Invalidate(ctx, userID)
	metrics.EntriesDeleted.Inc()

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Journal entry deleted successfully"})
}
