package importer

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/playtomic"
)

const (
	sportPadel      = "PADEL"
	defaultLookback = 30 * 24 * time.Hour
)

var (
	// ErrNotConfigured is returned when no Playtomic tenant is configured.
	ErrNotConfigured = errors.New("playtomic import is not configured")
	// ErrAlreadyRunning is returned when an import is already in progress.
	ErrAlreadyRunning = errors.New("an import is already running")
)

// Importer pulls confirmed doubles results from Playtomic into the league.
type Importer struct {
	client   playtomic.PlaytomicClient
	recorder Recorder
	store    Store
	players  PlayerResolver
	metrics  metrics.Metrics
	tenantID string
	lookback time.Duration
	now      func() time.Time

	running sync.Mutex
}

// Report summarises one import run.
type Report struct {
	Fetched    int      `json:"fetched"`
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Rejected   int      `json:"rejected"`
	Failed     int      `json:"failed"`
	Registered []string `json:"registered"`
	DryRun     bool     `json:"dry_run"`
}
