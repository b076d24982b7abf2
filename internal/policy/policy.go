package policy

import (
	"github.com/Hemanth-2OOT/Care-cloud/internal/consolidate"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

const (
	criticalThreshold = 90
	highThreshold     = 70
	mediumThreshold   = 40

	// Alerts fire on raw score alone above this line.
	alertScoreThreshold = 80
)

// Labels that alert a guardian regardless of score.
var severeLabels = []models.Category{
	models.CategorySexualContent,
	models.CategoryGrooming,
	models.CategoryViolence,
	models.CategorySelfHarmRisk,
}

func SeverityFor(score int) models.Severity {
	switch {
	case score >= criticalThreshold:
		return models.SeverityCritical
	case score >= highThreshold:
		return models.SeverityHigh
	case score >= mediumThreshold:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func AlertRequired(score int, labels map[models.Category]bool) bool {
	if score >= alertScoreThreshold {
		return true
	}
	for _, l := range severeLabels {
		if labels[l] {
			return true
		}
	}
	return false
}

// Finalize maps a consolidation onto the outgoing verdict. It reads no
// clock and keeps no state; identity fields are stamped by the caller.
func Finalize(cons consolidate.Consolidation) models.RiskVerdict {
	return models.RiskVerdict{
		Score:          cons.Score,
		Severity:       SeverityFor(cons.Score),
		Labels:         cons.Labels,
		Explanation:    cons.Explanation,
		SupportMessage: cons.SupportMessage,
		ActionSteps:    cons.ActionSteps,
		AlertRequired:  AlertRequired(cons.Score, cons.Labels),
	}
}
