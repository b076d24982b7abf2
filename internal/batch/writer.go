package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type outputRow struct {
	LineNumber int                 `json:"line_number"`
	Error      string              `json:"error,omitempty"`
	Verdict    *models.RiskVerdict `json:"verdict,omitempty"`
}

// Summary tallies a whole run.
type Summary struct {
	Total          int            `json:"total"`
	Failed         int            `json:"failed"`
	Alerts         int            `json:"alerts"`
	SeverityCounts map[string]int `json:"severity_counts"`
}

// Writer emits results in the requested format: one row per line for
// jsonl, or a single tally object written on Close for summary.
type Writer struct {
	format  string
	encoder *json.Encoder
	logger  *zerolog.Logger
	summary Summary
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatSummary:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		format:  format,
		encoder: json.NewEncoder(w),
		logger:  logger,
		summary: Summary{SeverityCounts: make(map[string]int)},
	}, nil
}

func (w *Writer) Write(result Result) error {
	w.tally(result)

	if w.format != FormatJSONL {
		return nil
	}

	row := outputRow{LineNumber: result.LineNumber}
	if result.Err != nil {
		row.Error = result.Err.Error()
	} else {
		verdict := result.Verdict
		row.Verdict = &verdict
	}
	return w.encoder.Encode(row)
}

func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}
	return w.encoder.Encode(w.summary)
}

func (w *Writer) Totals() Summary {
	return w.summary
}

func (w *Writer) tally(result Result) {
	w.summary.Total++
	if result.Err != nil {
		w.summary.Failed++
		return
	}
	w.summary.SeverityCounts[string(result.Verdict.Severity)]++
	if result.Verdict.AlertRequired {
		w.summary.Alerts++
	}
}
