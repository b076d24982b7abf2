package lexical

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// Rule scores one category. Single-word patterns match on word boundaries
// so "class" never trips a profanity rule; multi-word patterns match as
// plain substrings.
type Rule struct {
	Category models.Category `yaml:"category"`
	Weight   int             `yaml:"weight"`
	Patterns []string        `yaml:"patterns"`
}

type compiledRule struct {
	category models.Category
	weight   int
	words    *regexp.Regexp
	phrases  []string
}

// Analyzer is the always-available local fallback. It does no I/O and
// produces the same payload for the same content every time.
type Analyzer struct {
	rules  []compiledRule
	logger *zerolog.Logger
}

func NewAnalyzer(rules []Rule, logger *zerolog.Logger) *Analyzer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	a := &Analyzer{logger: logger}
	for _, r := range rules {
		a.rules = append(a.rules, compileRule(r))
	}
	return a
}

func (a *Analyzer) Source() models.Source {
	return models.SourceLocalFallback
}

func (a *Analyzer) Analyze(ctx context.Context, content string) (map[string]any, error) {
	lowered := strings.ToLower(content)

	score := 0
	labels := map[string]any{}
	var matched []string

	for _, rule := range a.rules {
		if !rule.matches(lowered) {
			continue
		}
		labels[string(rule.category)] = true
		matched = append(matched, string(rule.category))
		if rule.weight > score {
			score = rule.weight
		}
	}

	payload := map[string]any{
		"score":  score,
		"labels": labels,
	}
	if len(matched) > 0 {
		payload["explanation"] = fmt.Sprintf("Detected %s language patterns", strings.Join(matched, ", "))
	}

	a.logger.Debug().
		Int("score", score).
		Strs("categories", matched).
		Msg("lexical scan complete")
	return payload, nil
}

func (r compiledRule) matches(lowered string) bool {
	if r.words != nil && r.words.MatchString(lowered) {
		return true
	}
	for _, p := range r.phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func compileRule(r Rule) compiledRule {
	out := compiledRule{category: r.Category, weight: r.Weight}

	var words []string
	for _, p := range r.Patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.ContainsRune(p, ' ') {
			out.phrases = append(out.phrases, p)
		} else {
			words = append(words, regexp.QuoteMeta(p))
		}
	}
	if len(words) > 0 {
		out.words = regexp.MustCompile(`\b(?:` + strings.Join(words, "|") + `)\b`)
	}
	return out
}

// DefaultRules is the built-in lexicon. Deployments extend or replace it
// through the rules config; the engine never ships without a usable set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: models.CategoryGrooming,
			Weight:   80,
			Patterns: []string{
				"come sit on my lap",
				"you are so mature",
				"you are cute",
				"our secret",
				"don't tell your parents",
				"dont tell your parents",
				"send me a picture",
				"i can take care of you",
				"i understand you better than others",
			},
		},
		{
			Category: models.CategorySexualContent,
			Weight:   70,
			Patterns: []string{"send nudes", "nudes", "sext", "show me your body", "what are you wearing"},
		},
		{
			Category: models.CategorySelfHarmRisk,
			Weight:   75,
			Patterns: []string{"kill yourself", "kys", "hurt yourself", "cut yourself", "end your life", "better off dead"},
		},
		{
			Category: models.CategoryViolence,
			Weight:   70,
			Patterns: []string{"i will hurt you", "i will beat you", "beat you up", "going to hurt you"},
		},
		{
			Category: models.CategoryThreat,
			Weight:   70,
			Patterns: []string{"i will find you", "i know where you live", "you will regret", "watch your back"},
		},
		{
			Category: models.CategoryHateSpeech,
			Weight:   65,
			Patterns: []string{"go back to your country", "people like you don't belong"},
		},
		{
			Category: models.CategoryProfanity,
			Weight:   60,
			Patterns: []string{"fuck", "shit", "bitch", "asshole", "bastard"},
		},
		{
			Category: models.CategoryEmotionalAbuse,
			Weight:   55,
			Patterns: []string{"ugly", "stupid", "worthless", "loser", "nobody likes you", "you are nothing"},
		},
		{
			Category: models.CategoryManipulation,
			Weight:   55,
			Patterns: []string{"if you really loved me", "prove you love me", "you owe me", "everyone else does it", "don't be a baby"},
		},
		{
			Category: models.CategoryHarassment,
			Weight:   50,
			Patterns: []string{"i hate you", "nobody wants you here", "get out of here"},
		},
	}
}
