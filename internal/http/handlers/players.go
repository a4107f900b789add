package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-league/internal/processor"
)

type registerPlayerRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

func ListPlayersHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := processor.ListPlayers()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func GetPlayerHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		standing, err := processor.Standing(name)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, standing)
	}
}

func RegisterPlayerHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "Invalid JSON")
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would register player", "player", req.Name)
			respondJSON(w, http.StatusOK, req)
			return
		}
		player, err := processor.RegisterPlayer(req.Name, req.PhotoURL)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, player)
	}
}
