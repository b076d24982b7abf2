package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single adapter call.
const DefaultTimeout = 8 * time.Second

type Runner struct {
	Adapters []Adapter
	timeout  time.Duration
	logger   *zerolog.Logger
}

func NewRunner(adapters []Adapter, timeout time.Duration, logger *zerolog.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		Adapters: adapters,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run fans out all adapters concurrently and waits for every one of them.
// Each adapter gets its own timeout derived from ctx.
func (r *Runner) Run(ctx context.Context, content string) []Result {
	results := make(chan Result, len(r.Adapters))
	var wg sync.WaitGroup

	for _, adapter := range r.Adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			results <- r.analyze(ctx, a, content)
		}(adapter)
	}

	wg.Wait()
	close(results)

	var out []Result
	for res := range results {
		out = append(out, res)
	}
	return out
}

func (r *Runner) analyze(ctx context.Context, a Adapter, content string) (res Result) {
	start := time.Now()
	res = Result{Source: a.Source()}

	defer func() {
		if rec := recover(); rec != nil {
			res.Payload = nil
			res.Err = fmt.Errorf("adapter panic: %v", rec)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			r.logger.Warn().
				Str("source", string(res.Source)).
				Dur("duration", res.Duration).
				Err(res.Err).
				Msg("adapter failed")
		}
	}()

	adapterCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res.Payload, res.Err = a.Analyze(adapterCtx, content)
	return res
}
