package models

import (
	"time"
)

type Source string

const (
	SourceExternalClassifier Source = "external_classifier"
	SourceGenerativeLabeler  Source = "generative_labeler"
	SourceLocalFallback      Source = "local_fallback"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Category string

const (
	CategorySexualContent  Category = "sexual_content"
	CategoryGrooming       Category = "grooming"
	CategoryHarassment     Category = "harassment"
	CategoryManipulation   Category = "manipulation"
	CategoryEmotionalAbuse Category = "emotional_abuse"
	CategoryViolence       Category = "violence"
	CategorySelfHarmRisk   Category = "self_harm_risk"
	CategoryHateSpeech     Category = "hate_speech"
	CategoryProfanity      Category = "profanity"
	CategoryThreat         Category = "threat"
)

// Categories is the closed label set in canonical order. Responses render
// every entry, set or not.
var Categories = []Category{
	CategorySexualContent,
	CategoryGrooming,
	CategoryHarassment,
	CategoryManipulation,
	CategoryEmotionalAbuse,
	CategoryViolence,
	CategorySelfHarmRisk,
	CategoryHateSpeech,
	CategoryProfanity,
	CategoryThreat,
}

var categorySet = func() map[Category]bool {
	m := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

func ValidCategory(name string) bool {
	return categorySet[Category(name)]
}

// Input message

type AnalysisRequest struct {
	RequestID       string `json:"request_id,omitempty" jsonschema:"description=Unique request identifier, generated when absent"`
	RequesterName   string `json:"requester_name,omitempty" jsonschema:"description=Display name of the child or session owner"`
	GuardianContact string `json:"guardian_contact,omitempty" jsonschema:"description=Guardian email or webhook target for alerts"`
	Content         string `json:"content" jsonschema:"required,description=Message text to analyze"`
}

// One analyzer's normalized opinion
type RiskSignal struct {
	Source         Source            `json:"source"`
	Score          int               `json:"score"`
	Labels         map[Category]bool `json:"labels,omitempty"`
	Explanation    string            `json:"explanation,omitempty"`
	SupportMessage string            `json:"support_message,omitempty"`
	ActionSteps    []string          `json:"action_steps,omitempty"`
}

// Consolidated outcome
type RiskVerdict struct {
	RequestID      string            `json:"request_id"`
	RequesterName  string            `json:"requester_name,omitempty"`
	Score          int               `json:"score"`
	Severity       Severity          `json:"severity"`
	Labels         map[Category]bool `json:"labels"`
	Explanation    string            `json:"explanation"`
	SupportMessage string            `json:"support_message"`
	ActionSteps    []string          `json:"action_steps"`
	AlertRequired  bool              `json:"alert_required"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ActiveLabels returns the set labels in canonical order.
func (v RiskVerdict) ActiveLabels() []Category {
	var out []Category
	for _, c := range Categories {
		if v.Labels[c] {
			out = append(out, c)
		}
	}
	return out
}
