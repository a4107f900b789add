package club

import (
	"time"

	"github.com/mauv0809/padel-league/internal/league"
)

// ClubStore defines the interface for interacting with the league's players
// and match history.
type ClubStore interface {
	AddPlayer(name, photoURL string) (*league.Player, error)
	GetPlayer(name string) (*league.Player, error)
	GetAllPlayers() ([]league.Player, error)
	IsKnownPlayer(name string) bool
	// RecordMatch appends the result and applies every delta in one transaction.
	RecordMatch(result league.MatchResult, deltas map[string]league.PlayerDelta) error
	GetAllMatches() ([]league.MatchResult, error)
	GetMatchesBetween(from, to time.Time) ([]league.MatchResult, error)
	GetHeadToHeadMatches(playerA, playerB string) ([]league.MatchResult, error)
	IsImported(externalID string) bool
	Clear()
}
