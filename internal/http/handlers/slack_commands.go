package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/notifier"
	"github.com/mauv0809/padel-league/internal/processor"
)

var versusPattern = regexp.MustCompile(`(?i)\s+(?:vs\.?|versus|v)\s+`)

// PlayerResolver turns free text typed in Slack into a registered player.
type PlayerResolver interface {
	Resolve(query string) (*league.Player, []club.PlayerSuggestion, error)
}

// respondWithSlackMsg writes a formatted Slack message as the HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func respondWithSlackError(w http.ResponseWriter, notifier notifier.Notifier, message string) {
	msg, err := notifier.FormatErrorResponse(message)
	if err != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	respondWithSlackMsg(w, msg)
}

// parseRankingText parses an optional date range such as
// "2025-06-01 2025-06-30". A single date is the start of an open range.
func parseRankingText(text string) (league.RankingFilter, error) {
	var filter league.RankingFilter
	parts := strings.Fields(text)
	if len(parts) > 0 {
		from, err := parseDate(parts[0])
		if err != nil {
			return filter, err
		}
		filter.From = from
	}
	if len(parts) > 1 {
		to, err := parseDate(parts[1])
		if err != nil {
			return filter, err
		}
		filter.To = to
	}
	return filter, nil
}

// parseVersusText splits "Anna Jensen vs Bo Nielsen" into two names.
func parseVersusText(text string) (string, string, bool) {
	parts := versusPattern.Split(strings.TrimSpace(text), 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	return a, b, a != "" && b != ""
}

func RankingCommandHandler(processor *processor.Processor, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		filter, err := parseRankingText(r.FormValue("text"))
		if err != nil {
			respondWithSlackError(w, notifier, "Dates must be written as YYYY-MM-DD, e.g. `/ranking 2025-06-01 2025-06-30`.")
			return
		}

		standings, err := processor.Ranking(filter)
		if err != nil {
			http.Error(w, "Failed to get ranking", http.StatusInternalServerError)
			log.Error("Failed to get ranking", "error", err)
			return
		}

		msg, err := notifier.FormatRankingResponse(standings, filter)
		if err != nil {
			http.Error(w, "Failed to format ranking", http.StatusInternalServerError)
			log.Error("Failed to format ranking", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func HeadToHeadCommandHandler(processor *processor.Processor, players PlayerResolver, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		queryA, queryB, ok := parseVersusText(r.FormValue("text"))
		if !ok {
			respondWithSlackError(w, notifier, "Usage: `/h2h Anna Jensen vs Bo Nielsen`")
			return
		}
		log.Info("Received head-to-head command", "a", queryA, "b", queryB)

		playerA, ok := resolveOrSuggest(w, players, notifier, queryA)
		if !ok {
			return
		}
		playerB, ok := resolveOrSuggest(w, players, notifier, queryB)
		if !ok {
			return
		}

		h2h, err := processor.HeadToHead(playerA.Name, playerB.Name)
		if err != nil {
			if _, invalid := league.IsInvalidMatch(err); invalid {
				respondWithSlackError(w, notifier, "Pick two different players.")
				return
			}
			http.Error(w, "Failed to get head-to-head", http.StatusInternalServerError)
			log.Error("Failed to get head-to-head", "error", err)
			return
		}

		msg, err := notifier.FormatHeadToHeadResponse(h2h)
		if err != nil {
			http.Error(w, "Failed to format head-to-head", http.StatusInternalServerError)
			log.Error("Failed to format head-to-head", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func PlayerStatsCommandHandler(processor *processor.Processor, players PlayerResolver, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(r.FormValue("text"))
		if text == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received player stats command", "player", text)

		player, ok := resolveOrSuggest(w, players, notifier, text)
		if !ok {
			return
		}
		standing, err := processor.Standing(player.Name)
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player standing", "error", err, "player", player.Name)
			return
		}

		msg, err := notifier.FormatPlayerStatsResponse(standing)
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// resolveOrSuggest resolves query to a player. When that fails it writes the
// response itself, with suggestions if there are any, and returns false.
func resolveOrSuggest(w http.ResponseWriter, players PlayerResolver, notifier notifier.Notifier, query string) (*league.Player, bool) {
	player, suggestions, err := players.Resolve(query)
	if err == nil {
		return player, true
	}
	if !league.IsNotFound(err) {
		http.Error(w, "Failed to look up player", http.StatusInternalServerError)
		log.Error("Failed to resolve player", "error", err, "query", query)
		return nil, false
	}

	log.Warn("Could not resolve player", "query", query, "suggestions", len(suggestions))
	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		names = append(names, s.Player.Name)
	}
	msg, err := notifier.FormatPlayerNotFoundResponse(query, names)
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		return nil, false
	}
	respondWithSlackMsg(w, msg)
	return nil, false
}
