package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/umputun/newsbrief/pkg/domain"
)

// chatRequest is the turn request: the full transcript and an optional preference snapshot
type chatRequest struct {
	Messages    []domain.Message    `json:"messages"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
}

// chatResponse echoes the transcript with the assistant reply appended
type chatResponse struct {
	Messages           []domain.Message   `json:"messages"`
	UpdatedPreferences domain.Preferences `json:"updatedPreferences"`
}

// healthHandler reports liveness
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"mode":    s.agent.Mode(),
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// chatHandler runs one dialogue turn. Malformed requests get 400, anything else
// produces an assistant message, adapter and model failures included. The turn is
// bounded by turnTimeout and adapters report the expired deadline as text.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RenderError(w, r, fmt.Errorf("request body too large"), http.StatusRequestEntityTooLarge)
			return
		}
		RenderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	var prefs domain.Preferences
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	ctx := r.Context()
	if s.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.turnTimeout)
		defer cancel()
	}

	reply := s.agent.Respond(ctx, req.Messages, prefs)
	log.Printf("[DEBUG] chat turn done, %d messages in, reply %d chars", len(req.Messages), len(reply.Message))

	messages := slices.Clone(req.Messages)
	messages = append(messages, domain.Message{Role: domain.RoleAssistant, Content: reply.Message})
	RenderJSON(w, r, http.StatusOK, chatResponse{Messages: messages, UpdatedPreferences: reply.Preferences})
}

// validate checks transcript roles, an empty transcript is allowed
func (req chatRequest) validate() error {
	for i, m := range req.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d has invalid role %q", i, m.Role)
		}
	}
	return nil
}
