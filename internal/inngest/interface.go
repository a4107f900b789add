package inngest

import (
	"context"
	"net/http"

	"github.com/mauv0809/padel-league/internal/importer"
)

type InngestClient interface {
	Serve() http.Handler
	// RequestImport queues a Playtomic import to run as a durable function.
	RequestImport(ctx context.Context, days int, dryRun bool) (string, error)
}

// ImportRunner runs a Playtomic import.
type ImportRunner interface {
	Run(ctx context.Context, days int, dryRun bool) (importer.Report, error)
}
