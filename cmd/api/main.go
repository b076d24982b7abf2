package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/Hemanth-2OOT/Care-cloud/internal/api"
	"github.com/Hemanth-2OOT/Care-cloud/internal/api/middleware"
	"github.com/Hemanth-2OOT/Care-cloud/internal/setup"
	setuplog "github.com/Hemanth-2OOT/Care-cloud/internal/setup/logger"
)

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "CareCloud API",
			Description: "Risk analysis for messages sent to children",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "analyze", Description: "Content analysis"}},
		{TagProps: spec.TagProps{Name: "history", Description: "Stored analyses"}},
	}
}

func main() {
	// Load env before the logger so LOG_LEVEL from .env applies.
	loadErr := godotenv.Load()

	log.Logger = setuplog.New(os.Getenv("LOG_LEVEL"))
	logger := log.Logger

	if loadErr != nil {
		log.Warn().Msg("no .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire dependencies")
	}
	defer deps.Close()

	handler := api.NewHandler(deps.Engine, deps.Records, &logger)

	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	openAPIConfig := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/v1/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(openAPIConfig))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "18080"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("address", addr).Msg("starting carecloud api")

	server := http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(container),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
