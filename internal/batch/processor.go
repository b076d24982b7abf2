package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/engine"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

const defaultWorkers = 5

// Result pairs one input line with its verdict. Err carries either the
// parse error from the reader or the engine error.
type Result struct {
	LineNumber int
	Verdict    models.RiskVerdict
	Err        error
}

type Processor struct {
	engine  *engine.Engine
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(eng *engine.Engine, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Processor{
		engine:  eng,
		workers: workers,
		logger:  logger,
	}
}

// Process fans the records out over the worker pool. Results arrive in
// completion order, not input order; the channel closes once every record
// is handled or ctx dies.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan Result {
	jobs := make(chan InputRecord)
	out := make(chan Result)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				select {
				case out <- p.analyze(ctx, record):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Processor) analyze(ctx context.Context, record InputRecord) Result {
	if record.Error != nil {
		p.logger.Warn().
			Int("line", record.LineNumber).
			Err(record.Error).
			Msg("skipping malformed record")
		return Result{LineNumber: record.LineNumber, Err: record.Error}
	}

	verdict, err := p.engine.Analyze(ctx, record.Request)
	if err != nil {
		p.logger.Error().
			Int("line", record.LineNumber).
			Str("request_id", record.Request.RequestID).
			Err(err).
			Msg("analysis failed")
		return Result{LineNumber: record.LineNumber, Err: err}
	}

	return Result{LineNumber: record.LineNumber, Verdict: verdict}
}
