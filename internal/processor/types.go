package processor

import (
	"errors"

	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/pubsub"
)

// Processor applies match results to the league and answers ranking and
// head-to-head queries.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	policy   league.Policy
}

// ErrAlreadyImported is returned when an external match was recorded before.
var ErrAlreadyImported = errors.New("match already imported")
