package importer

import (
	"context"

	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/league"
)

// Recorder applies imported results to the league.
type Recorder interface {
	Policy() league.Policy
	ImportMatch(ctx context.Context, in league.MatchInput, source league.Source, externalID string, dryRun bool) (league.Outcome, error)
	RegisterPlayer(name, photoURL string) (*league.Player, error)
}

// Store is the read side the importer needs to skip known matches.
type Store interface {
	IsImported(externalID string) bool
}

// PlayerResolver maps a Playtomic display name to a registered player.
type PlayerResolver interface {
	Resolve(query string) (*league.Player, []club.PlayerSuggestion, error)
}
