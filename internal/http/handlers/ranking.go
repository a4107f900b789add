package handlers

import (
	"net/http"

	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/processor"
)

// RankingHandler serves the standings. Optional from and to query values
// (YYYY-MM-DD, both inclusive) limit the ranking to matches in that range.
func RankingHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseDate(r.URL.Query().Get("from"))
		if err != nil {
			badRequest(w, "from must be YYYY-MM-DD")
			return
		}
		to, err := parseDate(r.URL.Query().Get("to"))
		if err != nil {
			badRequest(w, "to must be YYYY-MM-DD")
			return
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			badRequest(w, "to must not be before from")
			return
		}

		standings, err := processor.Ranking(league.RankingFilter{From: from, To: to})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, standings)
	}
}

func HeadToHeadHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
		if a == "" || b == "" {
			badRequest(w, "a and b are required")
			return
		}
		h2h, err := processor.HeadToHead(a, b)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, h2h)
	}
}
