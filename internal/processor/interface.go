package processor

import (
	"time"

	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	AddPlayer(name, photoURL string) (*league.Player, error)
	GetPlayer(name string) (*league.Player, error)
	GetAllPlayers() ([]league.Player, error)
	IsKnownPlayer(name string) bool
	RecordMatch(result league.MatchResult, deltas map[string]league.PlayerDelta) error
	GetAllMatches() ([]league.MatchResult, error)
	GetMatchesBetween(from, to time.Time) ([]league.MatchResult, error)
	GetHeadToHeadMatches(playerA, playerB string) ([]league.MatchResult, error)
	IsImported(externalID string) bool
	Clear()
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
