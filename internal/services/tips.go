package services

import (
	"math/rand/v2"

	"github.com/AnshRaj112/serenify-journal/internal/sentiment"
)

var tipsByCategory = map[sentiment.Category][]string{
	sentiment.CategoryNegative: {
		"It's okay to not be okay. Consider talking to a trusted friend or family member about how you're feeling.",
		"Try practicing deep breathing exercises - inhale for 4 counts, hold for 4, exhale for 4.",
		"Take a short walk outside. Fresh air and movement can help improve your mood.",
		"Write down three things you're grateful for today, no matter how small.",
		"Consider reaching out to a mental health professional. You don't have to face this alone.",
		"Practice self-compassion. Treat yourself with the same kindness you'd offer a friend.",
		"Try a 5-minute meditation session to center yourself.",
		"Listen to your favorite music or a calming playlist.",
		"Take a warm bath or shower to help relax your body and mind.",
		"Remember that difficult emotions are temporary and will pass.",
	},
	sentiment.CategoryNeutral: {
		"Consider exploring a new hobby or activity that interests you.",
		"Try journaling about your goals and aspirations for the future.",
		"Connect with a friend you haven't spoken to in a while.",
		"Practice mindfulness by focusing on the present moment.",
		"Set a small, achievable goal for today and celebrate when you complete it.",
		"Try a new recipe or cook your favorite meal.",
		"Spend some time in nature, even if it's just sitting in a park.",
		"Read a book or article about something that interests you.",
		"Practice gratitude by writing down one good thing that happened today.",
		"Consider learning a new skill or taking an online course.",
	},
	sentiment.CategoryPositive: {
		"Great job maintaining a positive outlook! Keep up the good work.",
		"Share your positive energy with others - it can be contagious!",
		"Consider helping someone else today - acts of kindness boost happiness.",
		"Document this good feeling in your journal for future reference.",
		"Use this positive energy to tackle a challenging task.",
		"Celebrate your achievements, no matter how small they may seem.",
		"Consider starting a gratitude practice to maintain this positive mindset.",
		"Share your joy with friends and family.",
		"Use this momentum to set and work toward new goals.",
		"Remember this feeling - you can return to it during difficult times.",
	},
}

var insightByCategory = map[sentiment.Category]string{
	sentiment.CategoryNegative: "I sense you might be going through a difficult time. Remember that it's okay to feel this way, and seeking support is a sign of strength.",
	sentiment.CategoryNeutral:  "You seem to be in a balanced state of mind. This is a great opportunity to reflect on your goals and aspirations.",
	sentiment.CategoryPositive: "It's wonderful to see you in such a positive state! This energy can be a great foundation for personal growth and helping others.",
}

// Tips returns a copy of the tips for a category; nil for unknown categories.
func Tips(c sentiment.Category) []string {
	tips, ok := tipsByCategory[c]
	if !ok {
		return nil
	}
	return append([]string(nil), tips...)
}

// Insight returns the fixed insight sentence for a category.
func Insight(c sentiment.Category) string {
	if s, ok := insightByCategory[c]; ok {
		return s
	}
	return insightByCategory[sentiment.CategoryNeutral]
}

// RandSource is satisfied by *rand.Rand.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// TipPicker selects tips uniformly at random.
type TipPicker struct {
	src RandSource
}

// NewTipPicker uses src, or the process-wide generator when src is nil.
func NewTipPicker(src RandSource) *TipPicker {
	if src == nil {
		src = globalRand{}
	}
	return &TipPicker{src: src}
}

// Pick returns a random tip for the category and false for unknown categories.
func (p *TipPicker) Pick(c sentiment.Category) (string, bool) {
	tips, ok := tipsByCategory[c]
	if !ok || len(tips) == 0 {
		return "", false
	}
	return tips[p.src.IntN(len(tips))], true
}
