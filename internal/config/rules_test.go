package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRulesConfig_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rules.yaml")

	configContent := `labeler:
  prompt: |
    Classify this message: {{.Text}}
    {"score": <int>, "labels": {}}
  model:
    max_tokens: 256
    temperature: 0.2
    retry: true

lexicon:
  rules:
    - category: grooming
      weight: 85
      patterns:
        - "our little secret"
    - category: profanity
      weight: 55
      patterns:
        - "jerk"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	os.Setenv("RULES_CONFIG_PATH", configPath)
	defer os.Unsetenv("RULES_CONFIG_PATH")

	cfg, err := LoadRulesConfig()
	if err != nil {
		t.Fatalf("LoadRulesConfig() failed: %v", err)
	}

	if !strings.Contains(cfg.Labeler.Prompt, "{{.Text}}") {
		t.Errorf("Expected custom prompt, got %q", cfg.Labeler.Prompt)
	}
	if cfg.Labeler.Model.MaxTokens != 256 {
		t.Errorf("Expected max_tokens=256, got %d", cfg.Labeler.Model.MaxTokens)
	}
	if !cfg.Labeler.Model.Retry {
		t.Error("Expected retry=true")
	}
	if len(cfg.Lexicon.Rules) != 2 {
		t.Errorf("Expected 2 lexicon rules, got %d", len(cfg.Lexicon.Rules))
	}
	if cfg.Lexicon.Rules[0].Weight != 85 {
		t.Errorf("Expected weight 85, got %d", cfg.Lexicon.Rules[0].Weight)
	}
}

func TestLoadRulesConfig_MissingFileUsesDefaults(t *testing.T) {
	os.Setenv("RULES_CONFIG_PATH", filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	defer os.Unsetenv("RULES_CONFIG_PATH")

	cfg, err := LoadRulesConfig()
	if err != nil {
		t.Fatalf("Missing rules file must fall back to defaults, got error: %v", err)
	}

	if cfg.Labeler.Prompt != DefaultPrompt {
		t.Error("Expected embedded default prompt")
	}
	if cfg.Labeler.Model.MaxTokens != 512 {
		t.Errorf("Expected default max_tokens=512, got %d", cfg.Labeler.Model.MaxTokens)
	}
	if len(cfg.Lexicon.Rules) != 0 {
		t.Errorf("Expected empty lexicon (embedded defaults apply downstream), got %d rules", len(cfg.Lexicon.Rules))
	}
}

func TestLoadRulesConfig_PartialFileGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rules.yaml")

	configContent := `lexicon:
  rules:
    - category: threat
      weight: 75
      patterns:
        - "watch yourself"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	os.Setenv("RULES_CONFIG_PATH", configPath)
	defer os.Unsetenv("RULES_CONFIG_PATH")

	cfg, err := LoadRulesConfig()
	if err != nil {
		t.Fatalf("LoadRulesConfig() failed: %v", err)
	}

	if cfg.Labeler.Prompt != DefaultPrompt {
		t.Error("Expected default prompt when labeler section is absent")
	}
	if cfg.Labeler.Model.MaxTokens != 512 {
		t.Errorf("Expected default max_tokens=512, got %d", cfg.Labeler.Model.MaxTokens)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RulesConfig)
		wantErr string
	}{
		{
			name:    "bad prompt template",
			mutate:  func(c *RulesConfig) { c.Labeler.Prompt = "{{.Broken" },
			wantErr: "invalid labeler prompt",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *RulesConfig) { c.Labeler.Model.Temperature = 1.5 },
			wantErr: "invalid temperature",
		},
		{
			name: "missing category",
			mutate: func(c *RulesConfig) {
				c.Lexicon.Rules = []LexiconRule{{Weight: 10, Patterns: []string{"x"}}}
			},
			wantErr: "lexicon rule missing category",
		},
		{
			name: "unknown category",
			mutate: func(c *RulesConfig) {
				c.Lexicon.Rules = []LexiconRule{{Category: "spam", Weight: 10, Patterns: []string{"x"}}}
			},
			wantErr: "unknown lexicon category",
		},
		{
			name: "weight out of range",
			mutate: func(c *RulesConfig) {
				c.Lexicon.Rules = []LexiconRule{{Category: "threat", Weight: 120, Patterns: []string{"x"}}}
			},
			wantErr: "out of range",
		},
		{
			name: "no patterns",
			mutate: func(c *RulesConfig) {
				c.Lexicon.Rules = []LexiconRule{{Category: "threat", Weight: 50}}
			},
			wantErr: "has no patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &RulesConfig{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
