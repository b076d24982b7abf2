package consolidate

import (
	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

const (
	DefaultExplanation    = "This message may be harmful or inappropriate for a child."
	DefaultSupportMessage = "This message crosses boundaries. You did nothing wrong, and how you feel matters."
)

var defaultActionSteps = []string{
	"Do not reply to the message",
	"Block or report the sender",
	"Tell a parent, teacher, or trusted adult",
	"Save screenshots if needed",
}

// DefaultActionSteps returns a copy of the built-in guidance steps.
func DefaultActionSteps() []string {
	return append([]string(nil), defaultActionSteps...)
}

// Text fields are chosen per field, most trusted source first.
var textPrecedence = []models.Source{
	models.SourceGenerativeLabeler,
	models.SourceExternalClassifier,
	models.SourceLocalFallback,
}

// Consolidation is the fused, pre-policy view of all signals.
type Consolidation struct {
	Score          int
	Labels         map[models.Category]bool
	Explanation    string
	SupportMessage string
	ActionSteps    []string
}

type Consolidator struct {
	logger *zerolog.Logger
}

func NewConsolidator(logger *zerolog.Logger) *Consolidator {
	return &Consolidator{logger: logger}
}

// Fuse folds any number of signals into one consolidation. It never fails:
// zero signals produce a zero-score, label-free result with default texts.
func (c *Consolidator) Fuse(signals []models.RiskSignal) Consolidation {
	score := 0
	labels := make(map[models.Category]bool)

	for _, s := range signals {
		if s.Score > score {
			score = s.Score
		}
		for cat, set := range s.Labels {
			if set {
				labels[cat] = true
			}
		}
	}

	score = applyFloors(score, labels)

	// A mid-range score never goes out without a category.
	if score >= 40 && len(labels) == 0 {
		labels[models.CategoryHarassment] = true
	}

	out := Consolidation{
		Score:          score,
		Labels:         labels,
		Explanation:    pickText(signals, func(s models.RiskSignal) string { return s.Explanation }),
		SupportMessage: pickText(signals, func(s models.RiskSignal) string { return s.SupportMessage }),
		ActionSteps:    pickSteps(signals),
	}
	if out.Explanation == "" {
		out.Explanation = DefaultExplanation
	}
	if out.SupportMessage == "" {
		out.SupportMessage = DefaultSupportMessage
	}
	if len(out.ActionSteps) == 0 {
		out.ActionSteps = DefaultActionSteps()
	}

	c.logger.
		Info().
		Int("score", out.Score).
		Int("labels", len(out.Labels)).
		Msg("consolidation complete")
	return out
}

// applyFloors raises the score when a severe category is present.
// Floors only ever raise the score.
func applyFloors(score int, labels map[models.Category]bool) int {
	if labels[models.CategorySexualContent] && score < 70 {
		score = 70
	}
	if labels[models.CategoryGrooming] && score < 80 {
		score = 80
	}
	if (labels[models.CategoryViolence] || labels[models.CategorySelfHarmRisk]) && score < 70 {
		score = 70
	}
	return score
}

func pickText(signals []models.RiskSignal, field func(models.RiskSignal) string) string {
	for _, src := range textPrecedence {
		for _, s := range signals {
			if s.Source != src {
				continue
			}
			if v := field(s); v != "" {
				return v
			}
		}
	}
	return ""
}

func pickSteps(signals []models.RiskSignal) []string {
	for _, src := range textPrecedence {
		for _, s := range signals {
			if s.Source != src {
				continue
			}
			if len(s.ActionSteps) > 0 {
				return append([]string(nil), s.ActionSteps...)
			}
		}
	}
	return nil
}
