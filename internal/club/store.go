package club

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// AddPlayer registers a new player with empty statistics.
func (s *store) AddPlayer(name, photoURL string) (*league.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, league.ErrEmptyPlayerName
	}
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		photoURL = league.DefaultPhotoURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE name = ?)", name).Scan(&exists); err != nil {
		log.Error("Failed to check if player exists", "error", err, "player", name)
		return nil, fmt.Errorf("database error: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", league.ErrPlayerExists, name)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC()
	if _, err := tx.Exec("INSERT INTO players (name, photo_url, created_at) VALUES (?, ?, ?)", name, photoURL, createdAt.Unix()); err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO player_stats (player_name) VALUES (?)", name); err != nil {
		return nil, fmt.Errorf("failed to create player stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Added new player to the store", "player", name)
	return &league.Player{Name: name, PhotoURL: photoURL, CreatedAt: time.Unix(createdAt.Unix(), 0).UTC()}, nil
}

// GetPlayer retrieves a single player by their exact name.
func (s *store) GetPlayer(name string) (*league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT`+playerColumns+`
		FROM players p
		LEFT JOIN player_stats ps ON p.name = ps.player_name
		WHERE p.name = ?
	`, name)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("No player found", "player", name)
			return nil, &league.NotFoundError{Name: name}
		}
		log.Error("Failed to query player", "error", err, "player", name)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

// GetAllPlayers returns every player in registration order.
func (s *store) GetAllPlayers() ([]league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT` + playerColumns + `
		FROM players p
		LEFT JOIN player_stats ps ON p.name = ps.player_name
		ORDER BY p.id
	`)
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []league.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) IsKnownPlayer(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "player", name)
		return false
	}
	return exists
}

// RecordMatch appends the match to the history and adds the deltas to the
// players' statistics. Either everything is written or nothing is.
func (s *store) RecordMatch(result league.MatchResult, deltas map[string]league.PlayerDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setsJSON, err := json.Marshal(result.Sets)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO matches (id, played_at, winner1, winner2, loser1, loser2, sets_json, source, external_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.PlayedAt.Unix(), result.Winners[0], result.Winners[1], result.Losers[0], result.Losers[1],
		string(setsJSON), string(result.Source), nullString(result.ExternalID), time.Now().Unix())
	if err != nil {
		log.Error("Failed to insert match", "error", err, "matchID", result.ID)
		return fmt.Errorf("failed to insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO player_stats (player_name, points, matches_played, matches_won, matches_lost, sets_won, sets_lost, games_won, games_lost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_name) DO UPDATE SET
			points = points + excluded.points,
			matches_played = matches_played + excluded.matches_played,
			matches_won = matches_won + excluded.matches_won,
			matches_lost = matches_lost + excluded.matches_lost,
			sets_won = sets_won + excluded.sets_won,
			sets_lost = sets_lost + excluded.sets_lost,
			games_won = games_won + excluded.games_won,
			games_lost = games_lost + excluded.games_lost;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare player_stats statement: %w", err)
	}
	defer stmt.Close()

	for name, d := range deltas {
		_, err := stmt.Exec(name, d.Points, d.MatchesPlayed, d.MatchesWon, d.MatchesLost, d.SetsWon, d.SetsLost, d.GamesWon, d.GamesLost)
		if err != nil {
			log.Error("Failed to update player stats", "error", err, "player", name, "matchID", result.ID)
			return fmt.Errorf("failed to update stats for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Recorded match", "matchID", result.ID, "winners", result.Winners, "losers", result.Losers, "score", result.Score())
	return nil
}

// GetAllMatches retrieves the full history, newest first.
func (s *store) GetAllMatches() ([]league.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`SELECT `+matchColumns+` FROM matches ORDER BY played_at DESC, created_at DESC`)
}

// GetMatchesBetween retrieves matches played in [from, to). A zero bound is open.
func (s *store) GetMatchesBetween(from, to time.Time) ([]league.MatchResult, error) {
	lower := int64(math.MinInt64)
	if !from.IsZero() {
		lower = from.Unix()
	}
	upper := int64(math.MaxInt64)
	if !to.IsZero() {
		upper = to.Unix()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`
		SELECT `+matchColumns+` FROM matches
		WHERE played_at >= ? AND played_at < ?
		ORDER BY played_at DESC, created_at DESC
	`, lower, upper)
}

// GetHeadToHeadMatches retrieves the matches in which both players took part,
// as partners or as opponents.
func (s *store) GetHeadToHeadMatches(playerA, playerB string) ([]league.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`
		SELECT `+matchColumns+` FROM matches
		WHERE ? IN (winner1, winner2, loser1, loser2)
		  AND ? IN (winner1, winner2, loser1, loser2)
		ORDER BY played_at DESC, created_at DESC
	`, playerA, playerB)
}

func (s *store) IsImported(externalID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE external_id = ?)", externalID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check imported match", "error", err, "externalID", externalID)
		return false
	}
	return exists
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"matches", "player_stats", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) queryMatches(query string, args ...any) ([]league.MatchResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []league.MatchResult{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*league.MatchResult, error) {
	var (
		match      league.MatchResult
		playedAt   int64
		setsJSON   string
		source     string
		externalID sql.NullString
	)
	err := scanner.Scan(
		&match.ID, &playedAt,
		&match.Winners[0], &match.Winners[1], &match.Losers[0], &match.Losers[1],
		&setsJSON, &source, &externalID,
	)
	if err != nil {
		return nil, err
	}
	match.PlayedAt = time.Unix(playedAt, 0).UTC()
	match.Source = league.Source(source)
	match.ExternalID = externalID.String
	if err := json.Unmarshal([]byte(setsJSON), &match.Sets); err != nil {
		return nil, fmt.Errorf("decode sets of match %s: %w", match.ID, err)
	}
	return &match, nil
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*league.Player, error) {
	var (
		p         league.Player
		createdAt int64
	)
	err := scanner.Scan(
		&p.Name, &p.PhotoURL, &createdAt,
		&p.Points,
		&p.MatchesPlayed, &p.MatchesWon, &p.MatchesLost,
		&p.SetsWon, &p.SetsLost,
		&p.GamesWon, &p.GamesLost,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
