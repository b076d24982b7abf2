package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/analyzer"
	"github.com/Hemanth-2OOT/Care-cloud/internal/consolidate"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
	"github.com/Hemanth-2OOT/Care-cloud/internal/normalize"
	"github.com/Hemanth-2OOT/Care-cloud/internal/notify"
	"github.com/Hemanth-2OOT/Care-cloud/internal/policy"
	"github.com/Hemanth-2OOT/Care-cloud/internal/store"
)

// ErrEmptyContent is the only request error: analysis of a blank message.
var ErrEmptyContent = errors.New("content is empty")

// AdapterRunner fans the content out to every configured analyzer.
type AdapterRunner interface {
	Run(ctx context.Context, content string) []analyzer.Result
}

// RecordStore persists verdicts.
type RecordStore interface {
	SaveAnalysis(a *store.Analysis) error
}

// AlertDispatcher queues guardian alerts.
type AlertDispatcher interface {
	Enqueue(alert notify.Alert) bool
}

type Engine struct {
	runner       AdapterRunner
	consolidator *consolidate.Consolidator
	records      RecordStore
	alerts       AlertDispatcher
	logger       *zerolog.Logger
}

func NewEngine(
	runner AdapterRunner,
	consolidator *consolidate.Consolidator,
	records RecordStore,
	alerts AlertDispatcher,
	logger *zerolog.Logger,
) *Engine {
	return &Engine{
		runner:       runner,
		consolidator: consolidator,
		records:      records,
		alerts:       alerts,
		logger:       logger,
	}
}

// Analyze runs every adapter over the content and consolidates their
// signals into one verdict. Adapter failures degrade to zero signals; the
// caller always gets a verdict unless the content is blank or ctx dies.
func (e *Engine) Analyze(ctx context.Context, req models.AnalysisRequest) (models.RiskVerdict, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.RiskVerdict{}, ErrEmptyContent
	}

	id := strings.TrimSpace(req.RequestID)
	if id == "" {
		id = uuid.NewString()
	}

	e.logger.Info().
		Str("request_id", id).
		Msg("starting analysis")

	results := e.runner.Run(ctx, content)

	// A dead caller gets no verdict built from partial results.
	if err := ctx.Err(); err != nil {
		return models.RiskVerdict{}, err
	}

	signals := make([]models.RiskSignal, 0, len(results))
	for _, res := range results {
		payload := res.Payload
		if res.Err != nil {
			payload = nil
		}
		signals = append(signals, normalize.Signal(res.Source, payload))
	}

	verdict := policy.Finalize(e.consolidator.Fuse(signals))
	verdict.RequestID = id
	verdict.RequesterName = req.RequesterName
	verdict.CreatedAt = time.Now().UTC()

	e.persist(verdict, content)

	if verdict.AlertRequired {
		e.dispatchAlert(verdict, req.GuardianContact)
	}

	e.logger.Info().
		Str("request_id", id).
		Int("score", verdict.Score).
		Str("severity", string(verdict.Severity)).
		Bool("alert", verdict.AlertRequired).
		Msg("analysis complete")
	return verdict, nil
}

// persist appends the analysis record. Storage trouble is logged and never
// fails the request.
func (e *Engine) persist(verdict models.RiskVerdict, content string) {
	if e.records == nil {
		return
	}
	if err := e.records.SaveAnalysis(store.NewAnalysis(verdict, content)); err != nil {
		e.logger.Error().
			Err(err).
			Str("request_id", verdict.RequestID).
			Msg("failed to persist analysis")
	}
}

func (e *Engine) dispatchAlert(verdict models.RiskVerdict, guardianContact string) {
	if e.alerts == nil {
		return
	}

	labels := make([]string, 0, len(verdict.Labels))
	for _, c := range verdict.ActiveLabels() {
		labels = append(labels, string(c))
	}

	e.alerts.Enqueue(notify.Alert{
		RequestID:       verdict.RequestID,
		RequesterName:   verdict.RequesterName,
		GuardianContact: guardianContact,
		Score:           verdict.Score,
		Severity:        string(verdict.Severity),
		Labels:          labels,
		CreatedAt:       verdict.CreatedAt,
	})
}
