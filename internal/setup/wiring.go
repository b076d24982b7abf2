package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/analyzer"
	"github.com/Hemanth-2OOT/Care-cloud/internal/config"
	"github.com/Hemanth-2OOT/Care-cloud/internal/consolidate"
	"github.com/Hemanth-2OOT/Care-cloud/internal/engine"
	"github.com/Hemanth-2OOT/Care-cloud/internal/labeler"
	"github.com/Hemanth-2OOT/Care-cloud/internal/lexical"
	"github.com/Hemanth-2OOT/Care-cloud/internal/llm"
	"github.com/Hemanth-2OOT/Care-cloud/internal/llm/bedrock"
	"github.com/Hemanth-2OOT/Care-cloud/internal/llm/gpt"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
	"github.com/Hemanth-2OOT/Care-cloud/internal/notify"
	"github.com/Hemanth-2OOT/Care-cloud/internal/store"
	"github.com/Hemanth-2OOT/Care-cloud/internal/toxicity"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
	PerspectiveKey  string
	DatabasePath    string
	AdapterTimeout  time.Duration
	AlertWebhookURL string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	AlertQueueSize  int
}

type Dependencies struct {
	Engine     *engine.Engine
	Records    *store.Database
	Dispatcher *notify.Dispatcher
	Logger     *zerolog.Logger

	stopAlerts context.CancelFunc
}

// Close stops the alert worker, waits for it to finish the delivery in
// flight, and releases the store.
func (d *Dependencies) Close() error {
	if d.stopAlerts != nil {
		d.stopAlerts()
	}
	d.Dispatcher.Wait()
	return d.Records.Close()
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		PerspectiveKey:  getEnv("PERSPECTIVE_API_KEY", ""),
		DatabasePath:    getEnv("DATABASE_PATH", "carecloud.db"),
		AdapterTimeout:  getEnvDuration("ADAPTER_TIMEOUT", 8*time.Second),
		AlertWebhookURL: getEnv("ALERT_WEBHOOK_URL", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		AlertQueueSize:  getEnvInt("ALERT_QUEUE_SIZE", 64),
	}
}

// Wire assembles the full analysis pipeline: adapters, runner, store,
// alert channels and the engine. Call Dependencies.Close to shut down.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	rulesConfig, err := config.LoadRulesConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load rules config: %w", err)
	}

	records, err := store.Open(cfg.DatabasePath, true, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	adapters, err := buildAdapters(ctx, cfg, rulesConfig, logger)
	if err != nil {
		return nil, err
	}
	runner := analyzer.NewRunner(adapters, cfg.AdapterTimeout, logger)

	// The alert worker gets its own cancel so Close can stop it even when
	// the caller's ctx is still live.
	alertCtx, stopAlerts := context.WithCancel(ctx)
	dispatcher := notify.NewDispatcher(buildNotifiers(cfg, logger), cfg.AlertQueueSize, logger)
	dispatcher.Start(alertCtx)

	eng := engine.NewEngine(runner, consolidate.NewConsolidator(logger), records, dispatcher, logger)

	return &Dependencies{
		Engine:     eng,
		Records:    records,
		Dispatcher: dispatcher,
		Logger:     logger,
		stopAlerts: stopAlerts,
	}, nil
}

// buildAdapters always includes the lexical fallback. The generative
// labeler and the external classifier join when their credentials are
// configured, so a bare deployment still analyzes every message.
func buildAdapters(ctx context.Context, cfg *Config, rulesConfig *config.RulesConfig, logger *zerolog.Logger) ([]analyzer.Adapter, error) {
	adapters := []analyzer.Adapter{
		lexical.NewAnalyzer(lexiconRules(rulesConfig), logger),
	}

	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("labeler disabled, no usable LLM client")
	} else {
		contentLabeler, err := labeler.NewLabeler(rulesConfig.Labeler, llmClient, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create labeler: %w", err)
		}
		adapters = append(adapters, contentLabeler)
	}

	if cfg.PerspectiveKey != "" {
		classifier, err := toxicity.NewClient(toxicity.Config{APIKey: cfg.PerspectiveKey}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create toxicity client: %w", err)
		}
		adapters = append(adapters, classifier)
	} else {
		logger.Info().Msg("classifier disabled, PERSPECTIVE_API_KEY not set")
	}

	return adapters, nil
}

func buildNotifiers(cfg *Config, logger *zerolog.Logger) []notify.Notifier {
	var notifiers []notify.Notifier

	if cfg.AlertWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.AlertWebhookURL, logger))
	}
	if cfg.SMTPHost != "" {
		notifiers = append(notifiers, notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger))
	}

	return notifiers
}

func lexiconRules(rulesConfig *config.RulesConfig) []lexical.Rule {
	rules := make([]lexical.Rule, 0, len(rulesConfig.Lexicon.Rules))
	for _, r := range rulesConfig.Lexicon.Rules {
		rules = append(rules, lexical.Rule{
			Category: models.Category(r.Category),
			Weight:   r.Weight,
			Patterns: r.Patterns,
		})
	}
	return rules
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.Client, error) {
	switch provider {
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default: // bedrock
		if cfg.ClaudeModelID == "" {
			return nil, fmt.Errorf("CLAUDE_MODEL_ID is not set")
		}
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
