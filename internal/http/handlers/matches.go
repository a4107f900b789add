package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/processor"
)

// submitMatchRequest accepts either labelled winners and losers, or two
// pairs whose winner follows from the sets. Sets can be given as a list or
// as a score string such as "6-4, 3-6, 7-5".
type submitMatchRequest struct {
	Winners  []string          `json:"winners"`
	Losers   []string          `json:"losers"`
	PairA    []string          `json:"pair_a"`
	PairB    []string          `json:"pair_b"`
	Sets     []league.SetScore `json:"sets"`
	Score    string            `json:"score"`
	PlayedAt *time.Time        `json:"played_at"`
}

func ListMatchesHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := processor.ListMatches()
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func SubmitMatchHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "Invalid JSON")
			return
		}

		sets := req.Sets
		if req.Score != "" {
			parsed, err := league.ParseSets(req.Score)
			if err != nil {
				respondError(w, err)
				return
			}
			sets = parsed
		}

		var playedAt time.Time
		if req.PlayedAt != nil {
			playedAt = req.PlayedAt.UTC()
		}

		isDryRun := IsDryRunFromContext(r)
		var (
			outcome league.Outcome
			err     error
		)
		switch {
		case len(req.Winners) > 0 || len(req.Losers) > 0:
			winners, ok1 := pair(req.Winners)
			losers, ok2 := pair(req.Losers)
			if !ok1 || !ok2 {
				badRequest(w, "winners and losers must each name two players")
				return
			}
			outcome, err = processor.RecordMatch(r.Context(), league.MatchInput{
				Winners: winners, Losers: losers, Sets: sets, PlayedAt: playedAt,
			}, isDryRun)
		case len(req.PairA) > 0 || len(req.PairB) > 0:
			pairA, ok1 := pair(req.PairA)
			pairB, ok2 := pair(req.PairB)
			if !ok1 || !ok2 {
				badRequest(w, "pair_a and pair_b must each name two players")
				return
			}
			outcome, err = processor.RecordPairs(r.Context(), league.PairInput{
				PairA: pairA, PairB: pairB, Sets: sets, PlayedAt: playedAt,
			}, isDryRun)
		default:
			badRequest(w, "either winners and losers or pair_a and pair_b are required")
			return
		}
		if err != nil {
			respondError(w, err)
			return
		}

		status := http.StatusCreated
		if isDryRun {
			status = http.StatusOK
		}
		respondJSON(w, status, outcome)
	}
}

func pair(names []string) ([2]string, bool) {
	if len(names) != 2 {
		return [2]string{}, false
	}
	return [2]string{strings.TrimSpace(names[0]), strings.TrimSpace(names[1])}, true
}
