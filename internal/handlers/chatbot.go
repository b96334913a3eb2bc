package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/metrics"
	"github.com/AnshRaj112/serenify-journal/internal/sentiment"
	"github.com/AnshRaj112/serenify-journal/internal/services"
)

type ChatbotRequest struct {
	JournalText string `json:"journalText" validate:"required,min=10"`
}

var chatbotMessages = fieldMessages{
	"journalText.required": "Journal text is required",
	"journalText.min":      "Journal text must be at least 10 characters long",
}

type ChatbotResponse struct {
	MoodScore    sentiment.MoodScore `json:"moodScore"`
	MoodCategory sentiment.Category  `json:"moodCategory"`
	Suggestion   string              `json:"suggestion"`
	PatternAlert *string             `json:"patternAlert"`
	Insight      string              `json:"insight"`
}

type TipResponse struct {
	Tip      string             `json:"tip"`
	Category sentiment.Category `json:"category"`
}

// Chatbot scores the text and replies with a tip, an insight and, after a
// run of negative entries, a streak alert. Nothing is persisted.
func (h *Handler) Chatbot(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ChatbotRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	req.JournalText = strings.TrimSpace(req.JournalText)
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, validationError(err, chatbotMessages))
		return
	}

	score := sentiment.Score(req.JournalText)
	category := score.Category()
	metrics.MoodScores.WithLabelValues("chatbot", string(category)).Inc()

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()
	pattern := h.patterns.Check(ctx, userID)

	tip, _ := h.tips.Pick(category)
	resp := ChatbotResponse{
		MoodScore:    score,
		MoodCategory: category,
		Suggestion:   tip,
		Insight:      services.Insight(category),
	}
	if pattern.Pattern {
		msg := pattern.Message
		resp.PatternAlert = &msg
	}

	writeJSON(w, http.StatusOK, resp)
}

// Tips returns one random tip for ?category=, defaulting to neutral.
func (h *Handler) Tips(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	raw := r.URL.Query().Get("category")
	if raw == "" {
		raw = string(sentiment.CategoryNeutral)
	}
	category, ok := sentiment.ParseCategory(raw)
	if !ok {
		h.writeError(w, r, apperrors.Validation("Invalid category"))
		return
	}

	tip, _ := h.tips.Pick(category)
	writeJSON(w, http.StatusOK, TipResponse{Tip: tip, Category: category})
}
