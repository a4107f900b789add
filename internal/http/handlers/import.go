package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/importer"
)

// ImportScheduler queues an import to run in the background.
type ImportScheduler interface {
	RequestImport(ctx context.Context, days int, dryRun bool) (string, error)
}

// ImportHandler runs a Playtomic import and reports what happened. With
// async=true and a scheduler configured the import is queued instead.
func ImportHandler(im *importer.Importer, scheduler ImportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 0
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err != nil || parsed <= 0 {
				log.Warn("Invalid 'days' parameter provided. Using the default lookback.", "days_param", daysStr)
			} else {
				days = parsed
			}
		}

		if r.URL.Query().Get("async") == "true" && scheduler != nil {
			eventID, err := scheduler.RequestImport(r.Context(), days, IsDryRunFromContext(r))
			if err != nil {
				log.Error("Failed to queue Playtomic import", "error", err)
				respondJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
				return
			}
			respondJSON(w, http.StatusAccepted, map[string]string{"event_id": eventID})
			return
		}

		report, err := im.Run(r.Context(), days, IsDryRunFromContext(r))
		switch {
		case errors.Is(err, importer.ErrNotConfigured):
			respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		case errors.Is(err, importer.ErrAlreadyRunning):
			respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		case err != nil:
			log.Error("Playtomic import failed", "error", err)
			respondJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		default:
			respondJSON(w, http.StatusOK, report)
		}
	}
}
