package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const displayTimezone = "Europe/Copenhagen"

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token the notifier only
// formats messages; result notifications are logged and skipped.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	n := &Notifier{
		channelID: channelID,
		metrics:   metrics,
	}
	if token != "" {
		n.api = slack.New(token)
	} else {
		log.Warn("No Slack token configured, result notifications are disabled")
	}
	return n
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(result *league.MatchResult, dryRun bool) error {
	msg := s.formatResultNotification(result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatRankingResponse formats the ranking for a slash command response.
func (s *Notifier) FormatRankingResponse(standings []league.Standing, filter league.RankingFilter) (any, error) {
	return s.formatRanking(standings, filter), nil
}

// FormatHeadToHeadResponse formats the shared history of two players.
func (s *Notifier) FormatHeadToHeadResponse(h2h league.HeadToHead) (any, error) {
	return s.formatHeadToHead(h2h), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(standing league.Standing) (any, error) {
	return s.formatPlayerStats(standing), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string, suggestions []string) (any, error) {
	return s.formatPlayerNotFound(query, suggestions), nil
}

func (s *Notifier) FormatErrorResponse(message string) (any, error) {
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", ":warning: "+message, false, false), nil, nil),
	), nil
}

// formatResultNotification creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatResultNotification(result *league.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match result 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	winners := strings.Join(result.Winners[:], " & ")
	losers := strings.Join(result.Losers[:], " & ")
	resultText := fmt.Sprintf("*%s* beat %s\n> %s", winners, losers, result.Score())
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", resultText, false, false), nil, nil))

	_, loserSets := setTally(result.Sets)
	winnerPts, loserPts := league.Points(loserSets)
	pointsText := fmt.Sprintf("+%d points for %s", winnerPts, winners)
	if loserPts > 0 {
		pointsText += fmt.Sprintf(", +%d for %s", loserPts, losers)
	}
	contextElements := []slack.MixedElement{
		slack.NewTextBlockObject("plain_text", pointsText, true, false),
		slack.NewTextBlockObject("plain_text", formatTime(result.PlayedAt), true, false),
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}

// formatRanking creates a Slack message to display the league ranking.
func (s *Notifier) formatRanking(standings []league.Standing, filter league.RankingFilter) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 League Ranking 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if !filter.IsZero() {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", formatRange(filter), true, false)))
	}

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, st := range standings {
		playerText := fmt.Sprintf("%d. %s %s: *%d pts*\n> Won %d of %d (%.0f%%) | Sets %d-%d | Games %d-%d",
			st.Position,
			medal(st.Position),
			st.Name,
			st.Points,
			st.MatchesWon,
			st.MatchesPlayed,
			st.WinPercentage,
			st.SetsWon, st.SetsLost,
			st.GamesWon, st.GamesLost,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatHeadToHead creates a Slack message for the shared history of two players.
func (s *Notifier) formatHeadToHead(h2h league.HeadToHead) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("⚔️ %s vs %s", h2h.PlayerA, h2h.PlayerB)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	summary := fmt.Sprintf("*%s* %d wins | *%s* %d wins | %d matches together",
		h2h.PlayerA, h2h.WinsA, h2h.PlayerB, h2h.WinsB, len(h2h.Matches))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", summary, false, false), nil, nil))

	if len(h2h.Matches) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "They have not played together yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, m := range h2h.Matches {
		lines = append(lines, fmt.Sprintf("• %s: %s beat %s (%s)",
			m.PlayedAt.Format("2006-01-02"),
			strings.Join(m.Winners[:], " & "),
			strings.Join(m.Losers[:], " & "),
			m.Score(),
		))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(st league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", st.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Position*: %d\n> *Points*: %d\n> *Match Win %%*: %.2f%% (%d/%d)\n> *Sets*: %d-%d\n> *Games*: %d-%d",
		st.Position,
		st.Points,
		st.WinPercentage,
		st.MatchesWon,
		st.MatchesPlayed,
		st.SetsWon, st.SetsLost,
		st.GamesWon, st.GamesLost,
	)
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", playerText, false, false),
		nil,
		slack.NewAccessory(slack.NewImageBlockElement(st.PhotoURL, st.Name)),
	))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string, suggestions []string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*.", query)
	if len(suggestions) > 0 {
		text += fmt.Sprintf(" Did you mean %s?", strings.Join(suggestions, ", "))
	} else {
		text += " Try a different name."
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func setTally(sets []league.SetScore) (winner, loser int) {
	for _, set := range sets {
		if set.A > set.B {
			winner++
		} else if set.B > set.A {
			loser++
		}
	}
	return winner, loser
}

func formatTime(t time.Time) string {
	loc, err := time.LoadLocation(displayTimezone)
	if err != nil {
		return t.Format("Monday 02 Jan, 15:04")
	}
	return t.In(loc).Format("Monday 02 Jan, 15:04")
}

func formatRange(filter league.RankingFilter) string {
	from, to := "start", "today"
	if !filter.From.IsZero() {
		from = filter.From.Format("2006-01-02")
	}
	if !filter.To.IsZero() {
		to = filter.To.Format("2006-01-02")
	}
	return fmt.Sprintf("Matches from %s to %s", from, to)
}
