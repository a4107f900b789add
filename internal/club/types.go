package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

const playerColumns = `
	p.name,
	p.photo_url,
	p.created_at,
	COALESCE(ps.points, 0),
	COALESCE(ps.matches_played, 0),
	COALESCE(ps.matches_won, 0),
	COALESCE(ps.matches_lost, 0),
	COALESCE(ps.sets_won, 0),
	COALESCE(ps.sets_lost, 0),
	COALESCE(ps.games_won, 0),
	COALESCE(ps.games_lost, 0)`

const matchColumns = `id, played_at, winner1, winner2, loser1, loser2, sets_json, source, external_id`
