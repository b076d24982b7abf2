package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Hemanth-2OOT/Care-cloud/internal/batch"
	"github.com/Hemanth-2OOT/Care-cloud/internal/setup"
	setuplog "github.com/Hemanth-2OOT/Care-cloud/internal/setup/logger"
)

func main() {
	startTime := time.Now()

	log.Logger = setuplog.New(os.Getenv("LOG_LEVEL"))

	input := flag.String("input", "", "Input file path, '-' for stdin")
	output := flag.String("output", "", "Output file path, stdout when empty")
	format := flag.String("format", "jsonl", "Output format. Supported formats: 'jsonl', 'summary'")
	workers := flag.Int("workers", 5, "Concurrent analysis workers")
	dryRun := flag.Bool("dry-run", false, "Validate input without analyzing")

	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire dependencies")
	}
	defer deps.Close()

	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("reading input file")
	}

	reader := batch.NewReader(inputFile, deps.Logger)

	var records []batch.InputRecord
	for record := range reader.ReadAll(ctx) {
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Msg("input parsed")

	if *dryRun {
		dryRunAndExit(records)
	}

	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("writing to stdout")
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("writing to output file")
	}

	writer, err := batch.NewWriter(outputFile, *format, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create writer")
	}

	processor := batch.NewProcessor(deps.Engine, *workers, deps.Logger)
	results := processor.Process(ctx, records)

	writeErrors := 0
	for result := range results {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Int("line", result.LineNumber).Msg("failed to write result")
			writeErrors++
		}
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("failed to finish output")
	}

	totals := writer.Totals()
	log.Info().
		Int("total", totals.Total).
		Int("failed", totals.Failed).
		Int("alerts", totals.Alerts).
		Int("write_errors", writeErrors).
		Dur("duration", time.Since(startTime)).
		Msg("batch processing complete")
}

func dryRunAndExit(records []batch.InputRecord) {
	errorCount := 0
	for _, record := range records {
		if record.Error != nil {
			log.Error().
				Int("line", record.LineNumber).
				Err(record.Error).
				Msg("validation error")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("validation failed")
	}

	log.Info().Msg("validation successful")
	os.Exit(0)
}
