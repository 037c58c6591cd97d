package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/internal/core"
	"github.com/promptforge/promptforge/internal/logger"
)

type APIHandler struct {
	promptService *core.PromptService
	authService   *core.AuthService
}

func NewAPIHandler(ps *core.PromptService, as *core.AuthService) *APIHandler {
	return &APIHandler{promptService: ps, authService: as}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON leaves HTML characters unescaped so text fields round-trip
// byte for byte.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Log.Warn("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type GeneratePromptResponse struct {
	GeneratedPrompt string `json:"generatedPrompt"`
}

const (
	msgIdeaRequired   = "User idea is required"
	msgGenerateFailed = "Failed to generate prompt"
)

// GeneratePromptHandler turns {"userIdea": "..."} into {"generatedPrompt": "..."}.
// A missing, falsy or blank userIdea is a 400; a body that cannot be read
// that way is a 500.
// It persists nothing and handles its own preflight so it can be mounted
// without the CORS middleware.
func (h *APIHandler) GeneratePromptHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Error("Error generating prompt", zap.Error(fmt.Errorf("panic: %v", rec)))
			writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Log.Error("Error generating prompt", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	idea, err := decodeUserIdea(body)
	if err != nil {
		if errors.Is(err, errIdeaMissing) {
			writeError(w, http.StatusBadRequest, msgIdeaRequired)
			return
		}
		logger.Log.Error("Error generating prompt", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	_, generated := h.promptService.Generate(idea)
	writeJSON(w, http.StatusOK, GeneratePromptResponse{GeneratedPrompt: generated})
}
