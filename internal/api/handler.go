package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/api/middleware"
	"github.com/Hemanth-2OOT/Care-cloud/internal/engine"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
	"github.com/Hemanth-2OOT/Care-cloud/internal/store"
)

type Handler struct {
	engine  *engine.Engine
	records *store.Database
	logger  *zerolog.Logger
}

func NewHandler(engine *engine.Engine, records *store.Database, logger *zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		records: records,
		logger:  logger,
	}
}

// POST /api/v1/analyze
// Body: models.AnalysisRequest
// Returns: AnalysisResponse
func (h *Handler) Analyze(req *restful.Request, resp *restful.Response) {
	var analysisRequest models.AnalysisRequest
	if err := req.ReadEntity(&analysisRequest); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", analysisRequest.RequestID).
		Str("requester_name", analysisRequest.RequesterName).
		Int("content_length", len(analysisRequest.Content)).
		Msg("analysis requested")

	ctx := req.Request.Context()

	verdict, err := h.engine.Analyze(ctx, analysisRequest)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyContent) {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Str("request_id", analysisRequest.RequestID).Msg("analysis failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, NewAnalysisResponse(verdict))
}

// GET /api/v1/analyses?limit=N
func (h *Handler) RecentAnalyses(req *restful.Request, resp *restful.Response) {
	limit := parseLimit(req.QueryParameter("limit"))

	rows, err := h.records.RecentAnalyses(limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load analysis history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, toHistoryResponse(rows))
}

// GET /api/v1/analyses/requester/{requester_name}
func (h *Handler) AnalysesByRequester(req *restful.Request, resp *restful.Response) {
	name := strings.TrimSpace(req.PathParameter("requester_name"))
	if name == "" {
		middleware.HandleError(resp, errors.New("requester name is required"), http.StatusBadRequest)
		return
	}
	limit := parseLimit(req.QueryParameter("limit"))

	rows, err := h.records.AnalysesByRequester(name, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("requester_name", name).Msg("failed to load requester history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, toHistoryResponse(rows))
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func toHistoryResponse(rows []store.Analysis) []AnalysisResponse {
	out := make([]AnalysisResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromStoredAnalysis(row))
	}
	return out
}

// parseLimit returns 0 for absent or unusable values and lets the store
// apply its default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
