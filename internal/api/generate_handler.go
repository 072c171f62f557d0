package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/reviewnexus/reviewnexus/internal/gateway"
	"github.com/reviewnexus/reviewnexus/internal/models"
)

// User-facing messages for the generation failure taxonomy. The admin console
// shows these verbatim.
const (
	msgRateLimited    = "Limite de requisições atingido. Tente novamente em alguns instantes."
	msgQuotaExhausted = "Créditos insuficientes. Por favor, adicione créditos ao seu workspace."
	msgGenericFailure = "Erro ao gerar artigo"
)

// setCORSHeaders marks the response for cross-origin access. The admin
// console lives on a different origin than this service.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

// generateArticleHandler is the generation proxy endpoint. It orchestrates
// the pipeline and maps every failure to an HTTP status and error body.
func (s *Server) generateArticleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.generateArticleHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.generateArticleHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.generateArticleHandler: validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Debug("Server.generateArticleHandler: generating article", "title", req.Title, "category_set", req.Category != "")

	result, err := s.pipe.Generate(r.Context(), req)
	if err != nil {
		status, message := generationStatus(err)
		slog.Error("Server.generateArticleHandler: generation failed", "error", err, "status", status)
		writeError(w, status, message)
		return
	}

	slog.Info("Server.generateArticleHandler: article generated", "title", req.Title, "thumbnail", result.Thumbnail != nil)
	writeJSONResponse(w, http.StatusOK, result)
}

// generationStatus maps a pipeline failure to the response status and
// user-facing message. Rate limits and quota exhaustion keep their upstream
// status codes so the console can drive retry behavior; everything else is a
// generic 500.
func generationStatus(err error) (int, string) {
	switch {
	case errors.Is(err, gateway.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, gateway.ErrQuotaExhausted):
		return http.StatusPaymentRequired, msgQuotaExhausted
	default:
		message := err.Error()
		if message == "" {
			message = msgGenericFailure
		}
		return http.StatusInternalServerError, message
	}
}
