package processor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, policy league.Policy) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		policy:   policy,
	}
}

// Policy returns the validation rules the processor applies.
func (p *Processor) Policy() league.Policy {
	return p.policy
}

// RecordMatch validates a match with labelled winners and applies it. With
// dryRun the outcome is computed and returned but nothing is stored.
func (p *Processor) RecordMatch(ctx context.Context, in league.MatchInput, dryRun bool) (league.Outcome, error) {
	start := time.Now()
	outcome, err := league.Score(in, p.policy)
	if err != nil {
		p.rejected(err)
		return league.Outcome{}, err
	}
	return p.apply(ctx, outcome, dryRun, start)
}

// RecordPairs is RecordMatch for a match whose winner follows from the sets.
func (p *Processor) RecordPairs(ctx context.Context, in league.PairInput, dryRun bool) (league.Outcome, error) {
	start := time.Now()
	outcome, err := league.ScorePairs(in, p.policy)
	if err != nil {
		p.rejected(err)
		return league.Outcome{}, err
	}
	return p.apply(ctx, outcome, dryRun, start)
}

// ImportMatch records a match that was played elsewhere. externalID is used
// to skip matches that were imported before.
func (p *Processor) ImportMatch(ctx context.Context, in league.MatchInput, source league.Source, externalID string, dryRun bool) (league.Outcome, error) {
	start := time.Now()
	if p.store.IsImported(externalID) {
		return league.Outcome{}, fmt.Errorf("%w: %s", ErrAlreadyImported, externalID)
	}
	outcome, err := league.Score(in, p.policy)
	if err != nil {
		p.rejected(err)
		return league.Outcome{}, err
	}
	outcome.Result.Source = source
	outcome.Result.ExternalID = externalID
	return p.apply(ctx, outcome, dryRun, start)
}

func (p *Processor) apply(ctx context.Context, outcome league.Outcome, dryRun bool, start time.Time) (league.Outcome, error) {
	for _, name := range outcome.Result.Players() {
		if !p.store.IsKnownPlayer(name) {
			log.Warn("Match references unknown player", "player", name)
			return league.Outcome{}, &league.NotFoundError{Name: name}
		}
	}

	if outcome.Result.ID == "" {
		outcome.Result.ID = uuid.NewString()
	}
	if outcome.Result.PlayedAt.IsZero() {
		outcome.Result.PlayedAt = time.Now().UTC()
	}

	if dryRun {
		log.Info("[Dry Run] Would record match", "matchID", outcome.Result.ID, "winners", outcome.Result.Winners, "losers", outcome.Result.Losers, "score", outcome.Result.Score())
		return outcome, nil
	}

	if err := p.store.RecordMatch(outcome.Result, outcome.Deltas); err != nil {
		log.Error("Failed to record match", "error", err, "matchID", outcome.Result.ID)
		return league.Outcome{}, fmt.Errorf("failed to record match: %w", err)
	}
	p.metrics.IncMatchesRecorded()
	p.metrics.ObserveProcessingDuration(time.Since(start).Seconds())

	p.announce(ctx, outcome.Result)
	return outcome, nil
}

// announce publishes the result for asynchronous notification. When the event
// cannot be published the notification is sent directly. Failures are only
// logged: the match is already recorded.
func (p *Processor) announce(ctx context.Context, result league.MatchResult) {
	event := pubsub.MatchRecordedEvent{Result: result}
	err := p.pubsub.SendMessage(ctx, pubsub.EventNotifyResult, event)
	if err == nil {
		return
	}
	log.Debug("Could not publish result event, notifying directly", "error", err, "matchID", result.ID)
	if err := p.notifier.SendResultNotification(&result, false); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", result.ID)
	}
}

// NotifyResult sends the notification for an event received from Pub/Sub.
func (p *Processor) NotifyResult(event pubsub.MatchRecordedEvent) error {
	log.Info("Sending result notification", "matchID", event.Result.ID)
	return p.notifier.SendResultNotification(&event.Result, event.DryRun)
}

func (p *Processor) rejected(err error) {
	invalid, ok := league.IsInvalidMatch(err)
	if !ok {
		return
	}
	for _, rule := range invalid.Rules {
		p.metrics.IncMatchesRejected(string(rule))
	}
	log.Info("Rejected match result", "error", err)
}

// RegisterPlayer adds a player with empty statistics.
func (p *Processor) RegisterPlayer(name, photoURL string) (*league.Player, error) {
	return p.store.AddPlayer(name, photoURL)
}

func (p *Processor) GetPlayer(name string) (*league.Player, error) {
	return p.store.GetPlayer(strings.TrimSpace(name))
}

// ListPlayers returns every player ordered by name.
func (p *Processor) ListPlayers() ([]league.Player, error) {
	players, err := p.store.GetAllPlayers()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
	return players, nil
}

// ListMatches returns the match history, newest first.
func (p *Processor) ListMatches() ([]league.MatchResult, error) {
	return p.store.GetAllMatches()
}

// Ranking returns the standings. A non-empty filter recomputes the totals from
// the matches played within it.
func (p *Processor) Ranking(filter league.RankingFilter) ([]league.Standing, error) {
	players, err := p.store.GetAllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	var matches []league.MatchResult
	if !filter.IsZero() {
		to := filter.To
		if !to.IsZero() {
			to = to.AddDate(0, 0, 1)
		}
		matches, err = p.store.GetMatchesBetween(filter.From, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load matches: %w", err)
		}
	}
	return league.Rank(players, matches, filter), nil
}

// Standing returns a single player's row of the overall ranking.
func (p *Processor) Standing(name string) (league.Standing, error) {
	name = strings.TrimSpace(name)
	standings, err := p.Ranking(league.RankingFilter{})
	if err != nil {
		return league.Standing{}, err
	}
	for _, st := range standings {
		if st.Name == name {
			return st, nil
		}
	}
	return league.Standing{}, &league.NotFoundError{Name: name}
}

// HeadToHead returns every match both players took part in, newest first.
func (p *Processor) HeadToHead(a, b string) (league.HeadToHead, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return league.HeadToHead{}, &league.InvalidMatchError{Rules: []league.Rule{league.RuleDistinctPlayers}, Detail: a}
	}
	for _, name := range []string{a, b} {
		if _, err := p.store.GetPlayer(name); err != nil {
			return league.HeadToHead{}, err
		}
	}

	matches, err := p.store.GetHeadToHeadMatches(a, b)
	if err != nil {
		return league.HeadToHead{}, fmt.Errorf("failed to load matches: %w", err)
	}
	return league.HeadToHeadOf(a, b, matches), nil
}

// Clear wipes all players and matches.
func (p *Processor) Clear() {
	log.Warn("Clearing all league data")
	p.store.Clear()
}
