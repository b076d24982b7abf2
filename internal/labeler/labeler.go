package labeler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/config"
	"github.com/Hemanth-2OOT/Care-cloud/internal/llm"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// Labeler asks an LLM to score a message against the category set. The raw
// decoded JSON is returned as-is; field aliases are resolved downstream.
type Labeler struct {
	promptTemplate *template.Template
	model          config.ModelConfig
	client         llm.Client
	logger         *zerolog.Logger
}

type promptData struct {
	Text string
}

func NewLabeler(cfg config.LabelerConfig, client llm.Client, logger *zerolog.Logger) (*Labeler, error) {
	tmpl, err := template.New("labeler").Parse(cfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse labeler prompt template: %w", err)
	}

	return &Labeler{
		promptTemplate: tmpl,
		model:          cfg.Model,
		client:         client,
		logger:         logger,
	}, nil
}

func (l *Labeler) Source() models.Source {
	return models.SourceGenerativeLabeler
}

func (l *Labeler) Analyze(ctx context.Context, content string) (map[string]any, error) {
	now := time.Now()

	prompt, err := l.buildPrompt(content)
	if err != nil {
		return nil, fmt.Errorf("failed to build labeler prompt: %w", err)
	}

	request := llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   l.model.MaxTokens,
		Temperature: l.model.Temperature,
	}

	var resp *llm.LLMResponse
	if l.model.Retry {
		resp, err = l.client.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = l.client.InvokeModel(ctx, request)
	}
	if err != nil {
		return nil, fmt.Errorf("labeler model call failed: %w", err)
	}

	payload, err := extractJSON(resp.Content)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("content", resp.Content).
			Msg("labeler returned no parseable JSON")
		return nil, err
	}

	l.logger.Info().
		Dur("duration", time.Since(now)).
		Str("stop_reason", resp.StopReason).
		Msg("labeler completed")
	return payload, nil
}

func (l *Labeler) buildPrompt(content string) (string, error) {
	var buf bytes.Buffer
	if err := l.promptTemplate.Execute(&buf, promptData{Text: content}); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// extractJSON pulls the first JSON object out of a completion that may wrap
// it in markdown fences or surrounding prose.
func extractJSON(content string) (map[string]any, error) {
	content = stripMarkdownCodeBlock(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	return payload, nil
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
