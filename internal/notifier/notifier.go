package notifier

import (
	"github.com/mauv0809/padel-league/internal/league"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendResultNotification(result *league.MatchResult, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingResponse(standings []league.Standing, filter league.RankingFilter) (any, error)
	FormatHeadToHeadResponse(h2h league.HeadToHead) (any, error)
	FormatPlayerStatsResponse(standing league.Standing) (any, error)
	FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error)
	FormatErrorResponse(message string) (any, error)
}
