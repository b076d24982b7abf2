package config

// RulesConfig is the complete analysis rules configuration.
type RulesConfig struct {
	Labeler LabelerConfig `yaml:"labeler"`
	Lexicon LexiconConfig `yaml:"lexicon"`
}

// LabelerConfig drives the generative labeler adapter.
type LabelerConfig struct {
	Prompt string      `yaml:"prompt"`
	Model  ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}

// LexiconConfig overrides the built-in lexical fallback rules. An empty
// rule list keeps the embedded defaults.
type LexiconConfig struct {
	Rules []LexiconRule `yaml:"rules"`
}

type LexiconRule struct {
	Category string   `yaml:"category"`
	Weight   int      `yaml:"weight"`
	Patterns []string `yaml:"patterns"`
}
