package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/internal/core"
	"github.com/promptforge/promptforge/internal/logger"
	"github.com/promptforge/promptforge/internal/store"
)

func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := sessionFromContext(r.Context()).User.ID

	profile, err := h.promptService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		logger.Log.Error("Error loading profile", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// CreatePromptHandler generates a prompt and saves it for the caller.
func (h *APIHandler) CreatePromptHandler(w http.ResponseWriter, r *http.Request) {
	userID := sessionFromContext(r.Context()).User.ID

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	idea, err := decodeUserIdea(body)
	if err != nil {
		if errors.Is(err, errIdeaMissing) {
			writeError(w, http.StatusBadRequest, msgIdeaRequired)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prompt, err := h.promptService.Create(r.Context(), userID, idea)
	if err != nil {
		if errors.Is(err, core.ErrEmptyIdea) {
			writeError(w, http.StatusBadRequest, msgIdeaRequired)
			return
		}
		logger.Log.Error("Error creating prompt", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}
	writeJSON(w, http.StatusCreated, prompt)
}

func (h *APIHandler) ListPromptsHandler(w http.ResponseWriter, r *http.Request) {
	userID := sessionFromContext(r.Context()).User.ID

	prompts, err := h.promptService.ListRecent(r.Context(), userID)
	if err != nil {
		logger.Log.Error("Error listing prompts", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list prompts")
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

func (h *APIHandler) GetPromptHandler(w http.ResponseWriter, r *http.Request) {
	userID := sessionFromContext(r.Context()).User.ID
	promptID := chi.URLParam(r, "promptID")

	prompt, err := h.promptService.Get(r.Context(), userID, promptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Prompt not found")
			return
		}
		logger.Log.Error("Error getting prompt", zap.String("user_id", userID), zap.String("prompt_id", promptID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get prompt")
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

func (h *APIHandler) DeletePromptHandler(w http.ResponseWriter, r *http.Request) {
	userID := sessionFromContext(r.Context()).User.ID
	promptID := chi.URLParam(r, "promptID")

	if err := h.promptService.Delete(r.Context(), userID, promptID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Prompt not found")
			return
		}
		logger.Log.Error("Error deleting prompt", zap.String("user_id", userID), zap.String("prompt_id", promptID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete prompt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
