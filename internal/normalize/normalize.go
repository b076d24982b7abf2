// Package normalize turns raw adapter payloads into RiskSignal values.
// Every key alias and classifier attribute mapping lives here.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

var (
	scoreKeys       = []string{"score", "toxicity_score"}
	labelKeys       = []string{"labels", "detected_labels"}
	explanationKeys = []string{"explanation", "why_harmful"}
	supportKeys     = []string{"support_message", "victim_support_message", "victim_support"}
	stepsKeys       = []string{"action_steps", "safe_response_steps"}
)

// Legacy label names still emitted by older prompts.
var labelAliases = map[string]models.Category{
	"self_harm": models.CategorySelfHarmRisk,
	"gore":      models.CategoryViolence,
}

// Classifier attributes mapped onto the closed category set. An empty
// category contributes to the score only.
var attributeCategories = map[string]models.Category{
	"TOXICITY":          "",
	"SEVERE_TOXICITY":   models.CategoryHarassment,
	"INSULT":            models.CategoryHarassment,
	"PROFANITY":         models.CategoryProfanity,
	"THREAT":            models.CategoryThreat,
	"IDENTITY_ATTACK":   models.CategoryHateSpeech,
	"SEXUALLY_EXPLICIT": models.CategorySexualContent,
}

const labelConfidence = 0.5

// Signal normalizes one adapter payload. It is total: malformed or nil
// payloads yield a zero signal for the given source, never an error.
func Signal(source models.Source, payload map[string]any) models.RiskSignal {
	sig := models.RiskSignal{Source: source, Labels: map[models.Category]bool{}}
	if len(payload) == 0 {
		return sig
	}
	if source == models.SourceExternalClassifier {
		fromAttributes(&sig, payload)
		return sig
	}
	fromCanonical(&sig, payload)
	return sig
}

func fromCanonical(sig *models.RiskSignal, payload map[string]any) {
	for _, k := range scoreKeys {
		if v, ok := payload[k]; ok {
			if n, ok := toScore(v); ok {
				sig.Score = n
				break
			}
		}
	}

	for _, k := range labelKeys {
		raw, ok := payload[k].(map[string]any)
		if !ok {
			continue
		}
		for name, v := range raw {
			cat, known := canonicalCategory(name)
			if known && truthy(v) {
				sig.Labels[cat] = true
			}
		}
		break
	}

	sig.Explanation = firstString(payload, explanationKeys)
	sig.SupportMessage = firstString(payload, supportKeys)
	sig.ActionSteps = firstSteps(payload, stepsKeys)
}

func fromAttributes(sig *models.RiskSignal, payload map[string]any) {
	maxConf := 0.0
	for name, v := range payload {
		cat, known := attributeCategories[name]
		if !known {
			continue
		}
		conf, ok := toConfidence(v)
		if !ok {
			continue
		}
		if conf > maxConf {
			maxConf = conf
		}
		if cat != "" && conf >= labelConfidence {
			sig.Labels[cat] = true
		}
	}
	sig.Score = clampScore(int(math.Round(maxConf * 100)))
}

func canonicalCategory(name string) (models.Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if cat, ok := labelAliases[name]; ok {
		return cat, true
	}
	if models.ValidCategory(name) {
		return models.Category(name), true
	}
	return "", false
}

func toScore(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return clampScore(int(math.Round(n))), true
	case int:
		return clampScore(n), true
	case int64:
		return clampScore(int(n)), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return clampScore(int(math.Round(f))), true
	default:
		return 0, false
	}
}

func toConfidence(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, false
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func firstString(payload map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := payload[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstSteps(payload map[string]any, keys []string) []string {
	for _, k := range keys {
		switch v := payload[k].(type) {
		case []any:
			var steps []string
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					steps = append(steps, strings.TrimSpace(s))
				}
			}
			if len(steps) > 0 {
				return steps
			}
		case []string:
			if len(v) > 0 {
				return v
			}
		case string:
			if strings.TrimSpace(v) != "" {
				return []string{strings.TrimSpace(v)}
			}
		}
	}
	return nil
}
