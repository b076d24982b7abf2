package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// InputRecord is one parsed line of the input file. Lines that fail to
// parse carry Error and an empty Request; LineNumber is always set.
type InputRecord struct {
	LineNumber int
	Request    models.AnalysisRequest
	Error      error
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll streams records off the JSONL source. Blank lines are skipped
// but still counted, so reported line numbers match the file. The channel
// closes on EOF or when ctx is done.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read input")
		}
	}()

	return out
}
