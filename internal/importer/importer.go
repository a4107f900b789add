package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/playtomic"
	"github.com/mauv0809/padel-league/internal/processor"
)

// New creates a new Importer for the given Playtomic tenant.
func New(client playtomic.PlaytomicClient, recorder Recorder, store Store, players PlayerResolver, metrics metrics.Metrics, tenantID string) *Importer {
	return &Importer{
		client:   client,
		recorder: recorder,
		store:    store,
		players:  players,
		metrics:  metrics,
		tenantID: tenantID,
		lookback: defaultLookback,
		now:      time.Now,
	}
}

// Run imports the results of matches played at the tenant during the last
// days (30 when days is not positive). Matches that were imported before are
// skipped, unknown players are registered. With dryRun nothing is written.
func (im *Importer) Run(ctx context.Context, days int, dryRun bool) (Report, error) {
	report := Report{Registered: []string{}, DryRun: dryRun}
	if im.tenantID == "" {
		return report, ErrNotConfigured
	}
	if !im.running.TryLock() {
		return report, ErrAlreadyRunning
	}
	defer im.running.Unlock()

	lookback := im.lookback
	if days > 0 {
		lookback = time.Duration(days) * 24 * time.Hour
	}

	im.metrics.IncImporterRuns()
	log.Info("Starting Playtomic import", "tenant", im.tenantID, "lookback", lookback, "dryRun", dryRun)

	params := &playtomic.SearchMatchesParams{
		SportID:       sportPadel,
		HasPlayers:    true,
		Sort:          "start_date,DESC",
		TenantIDs:     []string{im.tenantID},
		FromStartDate: im.now().Add(-lookback).Format("2006-01-02") + "T00:00:00",
	}
	summaries, err := im.client.GetMatches(ctx, params)
	if err != nil {
		return report, fmt.Errorf("failed to fetch matches: %w", err)
	}
	report.Fetched = len(summaries)

	for _, summary := range summaries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		im.importOne(ctx, summary.MatchID, dryRun, &report)
	}

	if !dryRun {
		im.metrics.IncMatchesImported(report.Imported)
	}
	log.Info("Playtomic import finished", "fetched", report.Fetched, "imported", report.Imported, "skipped", report.Skipped, "rejected", report.Rejected, "failed", report.Failed)
	return report, nil
}

func (im *Importer) importOne(ctx context.Context, matchID string, dryRun bool, report *Report) {
	if im.store.IsImported(matchID) {
		log.Debug("Match already imported", "matchID", matchID)
		report.Skipped++
		return
	}

	match, err := im.client.GetSpecificMatch(ctx, matchID)
	if err != nil {
		log.Error("Failed to fetch match", "error", err, "matchID", matchID)
		report.Failed++
		return
	}

	in, err := toMatchInput(match)
	if err != nil {
		log.Debug("Skipping match", "matchID", matchID, "reason", err)
		report.Skipped++
		return
	}

	// Validate on the Playtomic names so a rejected result registers nobody.
	if _, err := league.Score(in, im.recorder.Policy()); err != nil {
		im.reject(matchID, err, report)
		return
	}

	if err := im.resolvePlayers(&in, dryRun, report); err != nil {
		log.Error("Failed to resolve players", "error", err, "matchID", matchID)
		report.Failed++
		return
	}

	_, err = im.recorder.ImportMatch(ctx, in, league.SourcePlaytomic, matchID, dryRun)
	switch {
	case err == nil:
		report.Imported++
	case dryRun && league.IsNotFound(err):
		// Players that would have been registered.
		report.Imported++
	case errors.Is(err, processor.ErrAlreadyImported):
		report.Skipped++
	case isInvalid(err):
		log.Warn("Playtomic result rejected", "matchID", matchID, "error", err)
		report.Rejected++
	default:
		log.Error("Failed to import match", "matchID", matchID, "error", err)
		report.Failed++
	}
}

func (im *Importer) reject(matchID string, err error, report *Report) {
	log.Warn("Playtomic result rejected", "matchID", matchID, "error", err)
	report.Rejected++
	if invalid, ok := league.IsInvalidMatch(err); ok {
		for _, rule := range invalid.Rules {
			im.metrics.IncMatchesRejected(string(rule))
		}
	}
}

// resolvePlayers replaces Playtomic display names with registered names,
// registering the players that are not known yet.
func (im *Importer) resolvePlayers(in *league.MatchInput, dryRun bool, report *Report) error {
	resolve := func(name string) (string, error) {
		player, _, err := im.players.Resolve(name)
		if err == nil {
			return player.Name, nil
		}
		if !league.IsNotFound(err) {
			return "", err
		}
		if dryRun {
			log.Info("[Dry Run] Would register player", "player", name)
			report.Registered = append(report.Registered, name)
			return name, nil
		}
		registered, err := im.recorder.RegisterPlayer(name, "")
		if err != nil {
			return "", fmt.Errorf("failed to register %s: %w", name, err)
		}
		report.Registered = append(report.Registered, registered.Name)
		return registered.Name, nil
	}

	for i := range in.Winners {
		name, err := resolve(in.Winners[i])
		if err != nil {
			return err
		}
		in.Winners[i] = name
	}
	for i := range in.Losers {
		name, err := resolve(in.Losers[i])
		if err != nil {
			return err
		}
		in.Losers[i] = name
	}
	return nil
}

// toMatchInput converts a confirmed Playtomic doubles match into a labelled
// match input with sets from the winners' point of view.
func toMatchInput(match playtomic.PadelMatch) (league.MatchInput, error) {
	if match.ResultsStatus != playtomic.ResultsStatusConfirmed {
		return league.MatchInput{}, fmt.Errorf("results are %s", match.ResultsStatus)
	}
	if len(match.Teams) != 2 {
		return league.MatchInput{}, fmt.Errorf("match has %d teams", len(match.Teams))
	}

	var winner, loser *playtomic.Team
	for i := range match.Teams {
		team := &match.Teams[i]
		if len(team.Players) != 2 {
			return league.MatchInput{}, fmt.Errorf("team %s has %d players", team.ID, len(team.Players))
		}
		for _, p := range team.Players {
			if strings.TrimSpace(p.Name) == "" {
				return league.MatchInput{}, fmt.Errorf("team %s has an anonymous player", team.ID)
			}
		}
		if team.TeamResult == playtomic.TeamResultWon {
			if winner != nil {
				return league.MatchInput{}, errors.New("both teams won")
			}
			winner = team
		} else {
			loser = team
		}
	}
	if winner == nil || loser == nil {
		return league.MatchInput{}, errors.New("no winning team")
	}

	sets := make([]league.SetScore, 0, len(match.Results))
	for _, result := range match.Results {
		sets = append(sets, league.SetScore{
			A: result.Scores[winner.ID],
			B: result.Scores[loser.ID],
		})
	}

	return league.MatchInput{
		Winners:  [2]string{strings.TrimSpace(winner.Players[0].Name), strings.TrimSpace(winner.Players[1].Name)},
		Losers:   [2]string{strings.TrimSpace(loser.Players[0].Name), strings.TrimSpace(loser.Players[1].Name)},
		Sets:     sets,
		PlayedAt: match.Start,
	}, nil
}

func isInvalid(err error) bool {
	_, ok := league.IsInvalidMatch(err)
	return ok
}
