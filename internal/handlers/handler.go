// Package handlers implements the journal and chatbot HTTP endpoints.
// Every handler reads the caller's id from the request context set by the
// authentication middleware; ids in request bodies are ignored.
package handlers

import (
	"reflect"
	"strings"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	dbTimeout    = 5 * time.Second
	maxBodyBytes = 64 << 10
	trendWindow  = 7 * 24 * time.Hour
)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Journals services.JournalRepository
	Patterns *services.PatternDetector
	Tips     *services.TipPicker
	Trends   *services.TrendCache
	Clock    clockwork.Clock
	Logger   zerolog.Logger
}

type Handler struct {
	journals services.JournalRepository
	patterns *services.PatternDetector
	tips     *services.TipPicker
	trends   *services.TrendCache
	clock    clockwork.Clock
	validate *validator.Validate
	log      zerolog.Logger
}

func New(d Deps) *Handler {
	clock := d.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	tips := d.Tips
	if tips == nil {
		tips = services.NewTipPicker(nil)
	}
	patterns := d.Patterns
	if patterns == nil && d.Journals != nil {
		patterns = services.NewPatternDetector(d.Journals, clock, d.Logger)
	}
	return &Handler{
		journals: d.Journals,
		patterns: patterns,
		tips:     tips,
		trends:   d.Trends,
		clock:    clock,
		validate: newValidator(),
		log:      d.Logger.With().Str("component", "handlers").Logger(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
