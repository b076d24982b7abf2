package config

import (
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// DefaultPrompt instructs the labeler model to answer with a single JSON
// object in the canonical payload shape.
const DefaultPrompt = `You are a child safety analyst. A child received the following message.

Message:
{{.Text}}

Assess the risk to the child and respond with ONLY a JSON object, no other
text, using exactly these keys:
{
  "score": <integer 0-100>,
  "labels": {"sexual_content": <bool>, "grooming": <bool>, "harassment": <bool>, "manipulation": <bool>, "emotional_abuse": <bool>, "violence": <bool>, "self_harm_risk": <bool>, "hate_speech": <bool>, "profanity": <bool>, "threat": <bool>},
  "explanation": "<one sentence, child-appropriate, why this is or is not harmful>",
  "support_message": "<one sentence reassuring the child>",
  "action_steps": ["<short imperative step>", "..."]
}

Scoring guide: 0-19 safe, 20-39 mildly concerning, 40-69 harmful,
70-89 severe, 90-100 emergency.`

const defaultMaxTokens = 512

// LoadRulesConfig reads the rules file named by RULES_CONFIG_PATH, falling
// back to configs/rules.yaml. A missing file is not an error: the engine
// runs on the embedded defaults.
func LoadRulesConfig() (*RulesConfig, error) {
	path := os.Getenv("RULES_CONFIG_PATH")
	if path == "" {
		path = "configs/rules.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &RulesConfig{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *RulesConfig) {
	if cfg.Labeler.Prompt == "" {
		cfg.Labeler.Prompt = DefaultPrompt
	}
	if cfg.Labeler.Model.MaxTokens == 0 {
		cfg.Labeler.Model.MaxTokens = defaultMaxTokens
	}
}

func (c *RulesConfig) Validate() error {
	if _, err := template.New("labeler").Parse(c.Labeler.Prompt); err != nil {
		return fmt.Errorf("invalid labeler prompt: %w", err)
	}
	if c.Labeler.Model.MaxTokens < 0 {
		return fmt.Errorf("labeler max_tokens must not be negative")
	}
	if c.Labeler.Model.Temperature < 0.0 || c.Labeler.Model.Temperature > 1.0 {
		return fmt.Errorf("invalid temperature %.2f, must be between 0.0 and 1.0", c.Labeler.Model.Temperature)
	}

	for _, rule := range c.Lexicon.Rules {
		if rule.Category == "" {
			return fmt.Errorf("lexicon rule missing category")
		}
		if !models.ValidCategory(rule.Category) {
			return fmt.Errorf("unknown lexicon category %q", rule.Category)
		}
		if rule.Weight < 0 || rule.Weight > 100 {
			return fmt.Errorf("lexicon weight %d out of range [0, 100]", rule.Weight)
		}
		if len(rule.Patterns) == 0 {
			return fmt.Errorf("lexicon rule %s has no patterns", rule.Category)
		}
	}

	return nil
}
