package middleware

import (
	"fmt"
	"net/http"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// Logger writes one log line per request.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()

	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request handled")
}

// RecoverPanic turns handler panics into 500 responses.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Msg("handler panicked")
			HandleError(resp, fmt.Errorf("internal server error"), http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}

// HandleError writes err as a JSON ErrorResponse with the given status code.
func HandleError(resp *restful.Response, err error, code int) {
	errorResponse := ErrorResponse{
		Error:   http.StatusText(code),
		Code:    code,
		Details: err.Error(),
	}

	if writeErr := resp.WriteHeaderAndEntity(code, errorResponse); writeErr != nil {
		log.Error().Err(writeErr).Msg("failed to write error response")
	}
}
