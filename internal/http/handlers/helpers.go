package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

const dateLayout = "2006-01-02"

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string   `json:"error"`
	Rules []string `json:"rules,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps domain errors to HTTP statuses: invalid matches are 400,
// unknown players 404 and duplicate players 409.
func respondError(w http.ResponseWriter, err error) {
	if invalid, ok := league.IsInvalidMatch(err); ok {
		rules := make([]string, 0, len(invalid.Rules))
		for _, rule := range invalid.Rules {
			rules = append(rules, string(rule))
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Rules: rules})
		return
	}
	switch {
	case league.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, league.ErrPlayerExists):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, league.ErrEmptyPlayerName):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// parseDate parses an optional YYYY-MM-DD query value.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}
