package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/tennis"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tennis.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, tennis.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, invitation.ErrCannotRespond),
		errors.Is(err, invitation.ErrNotCreator),
		errors.Is(err, invitation.ErrNotActive),
		errors.Is(err, challenge.ErrCannotChallenge),
		errors.Is(err, challenge.ErrNotChallenged),
		errors.Is(err, challenge.ErrNotPending):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes it with the mapped status code. Internal
// errors are not echoed to the client.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	body := errorResponse{Error: fmt.Sprintf("%s: %v", msg, err)}
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		body.Error = msg
	} else {
		log.Warn(msg, "error", err, "status", status)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeJSON reads a JSON request body into v. Malformed bodies are
// reported as invalid arguments.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", tennis.ErrInvalidArgument, err)
	}
	return nil
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	writeJSON(w, http.StatusOK, slackMsg)
}
