package inngest

import (
	"github.com/inngest/inngestgo"
)

type client struct {
	inngestClient inngestgo.Client
	runner        ImportRunner
}

// EventImportRequested triggers an on-demand import.
const EventImportRequested = "league/import.requested"

// ImportRequest is the payload of EventImportRequested.
type ImportRequest struct {
	Days   int  `json:"days"`
	DryRun bool `json:"dry_run"`
}
