package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/core"
	"github.com/promptforge/promptforge/internal/logger"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if _, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, core.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "User already registered")
			return
		}
		logger.Log.Error("Error creating user", zap.String("email", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred during signup")
		return
	}

	session, err := h.authService.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Log.Error("Error signing in new user", zap.String("email", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred during signup")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	session, err := h.authService.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid login credentials")
			return
		}
		logger.Log.Error("Error signing in", zap.String("email", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	if err := h.authService.SignOut(r.Context(), session); err != nil {
		logger.Log.Error("Error signing out", zap.String("user_id", session.User.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFromContext(r.Context()))
}

// AuthEventsHandler streams the caller's session events as server-sent
// events until the client disconnects or the session signs out.
func (h *APIHandler) AuthEventsHandler(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	userID := session.User.ID

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}
	// Long-lived stream; lift the server write timeout for this response.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	events := make(chan auth.Event, 8)
	unsubscribe := h.authService.OnAuthStateChange(func(ev auth.Event) {
		if ev.UserID != userID {
			return
		}
		select {
		case events <- ev:
		default:
			logger.Log.Warn("Dropping auth event for slow subscriber", zap.String("user_id", userID))
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, auth.Event{Type: "initial_session", UserID: userID, At: time.Now().UTC()})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			writeEvent(w, ev)
			flusher.Flush()
			if ev.Type == auth.SignedOut {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev auth.Event) {
	data, _ := json.Marshal(ev)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
}
