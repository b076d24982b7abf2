package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/Hemanth-2OOT/Care-cloud/internal/mcpadapter"
	"github.com/Hemanth-2OOT/Care-cloud/internal/setup"
	setuplog "github.com/Hemanth-2OOT/Care-cloud/internal/setup/logger"
)

func main() {
	_ = godotenv.Load()

	log.Logger = setuplog.New(os.Getenv("LOG_LEVEL"))
	logger := log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	server := createMCPServer(deps)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes (e.g. echo | ./bin/carecloud-mcp)
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("mcp server stopped")
			return
		}
		logger.Error().Err(err).Msg("failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "carecloud",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_content",
		Description: "Analyze a message sent to a child for grooming, sexual content, threats, and other safety risks",
	}, mcpadapter.NewAnalyzeHandler(deps.Engine))

	return server
}
