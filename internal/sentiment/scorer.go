// Package sentiment assigns a coarse mood label to free text by counting
// keywords from two fixed word lists.
package sentiment

import "strings"

// MoodScore is the tri-state label stored on every journal entry.
type MoodScore int

const (
	Negative MoodScore = -1
	Neutral  MoodScore = 0
	Positive MoodScore = 1
)

// Category names used to pick tips and insights.
type Category string

const (
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
	CategoryPositive Category = "positive"
)

// threshold is the distance from zero the keyword ratio has to exceed
// before text is labelled positive or negative.
const threshold = 0.2

// Category maps a score to its category. Anything other than -1 or 1 is neutral.
func (m MoodScore) Category() Category {
	switch m {
	case Positive:
		return CategoryPositive
	case Negative:
		return CategoryNegative
	default:
		return CategoryNeutral
	}
}

// ParseCategory reports whether s names a known category.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryNegative, CategoryNeutral, CategoryPositive:
		return c, true
	default:
		return "", false
	}
}

// Score labels text as Negative, Neutral or Positive.
//
// Tokens are split on whitespace, lowercased and stripped of anything that is
// not an ASCII word character before lookup. There is no negation handling:
// "not happy" counts as positive.
func Score(text string) MoodScore {
	var pos, neg int
	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := cleanToken(field)
		if word == "" {
			continue
		}
		if positiveWords.has(word) {
			pos++
		} else if negativeWords.has(word) {
			neg++
		}
	}

	if pos == 0 && neg == 0 {
		return Neutral
	}

	ratio := float64(pos-neg) / float64(pos+neg)
	switch {
	case ratio > threshold:
		return Positive
	case ratio < -threshold:
		return Negative
	default:
		return Neutral
	}
}

// scoreValue is Score for values of unknown type, e.g. a decoded JSON field.
// Anything that is not a string (or a non-nil *string) is Neutral.
func scoreValue(v any) MoodScore {
	switch t := v.(type) {
	case string:
		return Score(t)
	case *string:
		if t == nil {
			return Neutral
		}
		return Score(*t)
	default:
		return Neutral
	}
}

func cleanToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
