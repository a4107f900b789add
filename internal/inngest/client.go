package inngest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
	"github.com/mauv0809/padel-league/internal/importer"
)

// New registers the import functions with Inngest. With a non-empty cron
// schedule the import also runs periodically.
func New(inngestClient inngestgo.Client, runner ImportRunner, schedule string) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		runner:        runner,
	}
	if _, err := c.createImportFunction(); err != nil {
		return nil, err
	}
	if schedule != "" {
		if _, err := c.createScheduledImportFunction(schedule); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (i *client) createImportFunction() (inngestgo.ServableFunction, error) {
	config := inngestgo.FunctionOpts{
		ID:   "playtomic-import",
		Name: "Import Playtomic results",
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.EventTrigger(EventImportRequested, nil),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			req, err := decodeImportRequest(input.Event)
			if err != nil {
				return nil, err
			}
			return runImport(ctx, i.runner, req)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create import function: %w", err)
	}
	return f, nil
}

func (i *client) createScheduledImportFunction(schedule string) (inngestgo.ServableFunction, error) {
	config := inngestgo.FunctionOpts{
		ID:   "playtomic-import-scheduled",
		Name: "Scheduled Playtomic import",
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.CronTrigger(schedule),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			return runImport(ctx, i.runner, ImportRequest{})
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled import function: %w", err)
	}
	return f, nil
}

// runImport wraps the import in a step so a retried run does not import twice.
func runImport(ctx context.Context, runner ImportRunner, req ImportRequest) (importer.Report, error) {
	return step.Run(ctx, "import-playtomic-matches", func(ctx context.Context) (importer.Report, error) {
		log.Info("Running Playtomic import", "days", req.Days, "dryRun", req.DryRun)
		return runner.Run(ctx, req.Days, req.DryRun)
	})
}

// decodeImportRequest extracts the payload from a received event.
func decodeImportRequest(event any) (ImportRequest, error) {
	var envelope struct {
		Data ImportRequest `json:"data"`
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return ImportRequest{}, err
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ImportRequest{}, fmt.Errorf("invalid import event: %w", err)
	}
	return envelope.Data, nil
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}

func (i *client) RequestImport(ctx context.Context, days int, dryRun bool) (string, error) {
	return i.inngestClient.Send(ctx, inngestgo.Event{
		Name: EventImportRequested,
		Data: map[string]any{"days": days, "dry_run": dryRun},
	})
}
