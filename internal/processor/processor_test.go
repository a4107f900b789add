package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/database"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/notifier"
	"github.com/mauv0809/padel-league/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anaBea    = [2]string{"Ana", "Bea"}
	carlaDani = [2]string{"Carla", "Dani"}
)

func sets(scores ...int) []league.SetScore {
	out := make([]league.SetScore, 0, len(scores)/2)
	for i := 0; i+1 < len(scores); i += 2 {
		out = append(out, league.SetScore{A: scores[i], B: scores[i+1]})
	}
	return out
}

type fixture struct {
	p      *Processor
	store  *club.MockStore
	notif  *notifier.Mock
	metr   *metrics.Mock
	pubsub *pubsub.MockPubSubClient
}

func newFixture() fixture {
	store := club.NewMock()
	store.IsKnownPlayerFunc = func(name string) bool { return true }
	notif := notifier.NewMock()
	metr := metrics.NewMock()
	ps := pubsub.NewMock()
	return fixture{
		p:      New(store, notif, metr, ps, league.DefaultPolicy()),
		store:  store,
		notif:  notif,
		metr:   metr,
		pubsub: ps,
	}
}

// setupLeague wires the processor to a real in-memory database.
func setupLeague(t *testing.T, players ...string) (*Processor, *notifier.Mock, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	notif := notifier.NewMock()
	ps := pubsub.NewMock()
	ps.SendMessageFunc = func(topic pubsub.EventType, data any) error { return pubsub.ErrDisabled }
	p := New(club.New(db), notif, metrics.NewMock(), ps, league.DefaultPolicy())
	for _, name := range players {
		_, err := p.RegisterPlayer(name, "")
		require.NoError(t, err)
	}
	return p, notif, teardown
}

func TestProcessor_RecordMatch(t *testing.T) {
	t.Run("valid match is stored and announced", func(t *testing.T) {
		f := newFixture()
		playedAt := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

		outcome, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners:  anaBea,
			Losers:   carlaDani,
			Sets:     sets(6, 4, 4, 6, 7, 5),
			PlayedAt: playedAt,
		}, false)
		require.NoError(t, err)

		assert.NotEmpty(t, outcome.Result.ID)
		assert.Equal(t, playedAt, outcome.Result.PlayedAt)
		assert.Equal(t, 2, outcome.Deltas["Ana"].Points)
		assert.Equal(t, 1, outcome.Deltas["Carla"].Points)

		require.Len(t, f.store.RecordMatchCalls, 1)
		assert.Equal(t, outcome.Result.ID, f.store.RecordMatchCalls[0].Result.ID)
		assert.Len(t, f.store.RecordMatchCalls[0].Deltas, 4)
		assert.Equal(t, 1, f.metr.MatchesRecorded())
		assert.Len(t, f.metr.ProcessingDurations(), 1)

		require.Len(t, f.pubsub.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventNotifyResult, f.pubsub.SendMessageCalls[0].Topic)
		event, ok := f.pubsub.SendMessageCalls[0].Data.(pubsub.MatchRecordedEvent)
		require.True(t, ok)
		assert.Equal(t, outcome.Result.ID, event.Result.ID)
		assert.Empty(t, f.notif.SendResultNotificationCalls, "notification goes through pubsub")
	})

	t.Run("missing played_at defaults to now", func(t *testing.T) {
		f := newFixture()
		before := time.Now().UTC()
		outcome, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners: anaBea, Losers: carlaDani, Sets: sets(6, 0, 6, 0),
		}, false)
		require.NoError(t, err)
		assert.False(t, outcome.Result.PlayedAt.Before(before.Truncate(time.Second)))
	})

	t.Run("invalid match touches nothing", func(t *testing.T) {
		f := newFixture()
		_, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners: anaBea, Losers: carlaDani, Sets: sets(6, 6, 6, 4),
		}, false)

		invalid, ok := league.IsInvalidMatch(err)
		require.True(t, ok)
		assert.True(t, invalid.Has(league.RuleTiedSet))
		assert.Empty(t, f.store.RecordMatchCalls)
		assert.Empty(t, f.pubsub.SendMessageCalls)
		assert.Equal(t, 1, f.metr.MatchesRejected(string(league.RuleTiedSet)))
		assert.Equal(t, 0, f.metr.MatchesRecorded())
	})

	t.Run("unknown player is not found", func(t *testing.T) {
		f := newFixture()
		f.store.IsKnownPlayerFunc = func(name string) bool { return name != "Dani" }

		_, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners: anaBea, Losers: carlaDani, Sets: sets(6, 1, 6, 1),
		}, false)

		var nf *league.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Dani", nf.Name)
		assert.Empty(t, f.store.RecordMatchCalls)
	})

	t.Run("dry run returns the outcome without storing", func(t *testing.T) {
		f := newFixture()
		outcome, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners: anaBea, Losers: carlaDani, Sets: sets(6, 1, 6, 1),
		}, true)
		require.NoError(t, err)
		assert.Equal(t, 3, outcome.Deltas["Bea"].Points)
		assert.Empty(t, f.store.RecordMatchCalls)
		assert.Empty(t, f.pubsub.SendMessageCalls)
		assert.Empty(t, f.notif.SendResultNotificationCalls)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		f := newFixture()
		storeErr := errors.New("disk full")
		f.store.RecordMatchFunc = func(league.MatchResult, map[string]league.PlayerDelta) error { return storeErr }

		_, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners: anaBea, Losers: carlaDani, Sets: sets(6, 1, 6, 1),
		}, false)
		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, 0, f.metr.MatchesRecorded())
		assert.Empty(t, f.pubsub.SendMessageCalls)
	})

	t.Run("pubsub failure falls back to a direct notification", func(t *testing.T) {
		f := newFixture()
		f.pubsub.SendMessageFunc = func(topic pubsub.EventType, data any) error { return errors.New("unavailable") }
		f.notif.SendResultNotificationFunc = func(*league.MatchResult, bool) error { return errors.New("slack down") }

		outcome, err := f.p.RecordMatch(context.Background(), league.MatchInput{
			Winners: anaBea, Losers: carlaDani, Sets: sets(6, 1, 6, 1),
		}, false)
		require.NoError(t, err, "notification failures never undo the match")
		require.Len(t, f.notif.SendResultNotificationCalls, 1)
		assert.Equal(t, outcome.Result.ID, f.notif.SendResultNotificationCalls[0].Result.ID)
	})
}

func TestProcessor_RecordPairs(t *testing.T) {
	f := newFixture()
	outcome, err := f.p.RecordPairs(context.Background(), league.PairInput{
		PairA: anaBea, PairB: carlaDani, Sets: sets(3, 6, 6, 4, 2, 6),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, carlaDani, outcome.Result.Winners)
	assert.Equal(t, "6-3, 4-6, 6-2", outcome.Result.Score())
	require.Len(t, f.store.RecordMatchCalls, 1)
}

func TestProcessor_ImportMatch(t *testing.T) {
	in := league.MatchInput{Winners: anaBea, Losers: carlaDani, Sets: sets(6, 2, 6, 2)}

	t.Run("stores source and external id", func(t *testing.T) {
		f := newFixture()
		outcome, err := f.p.ImportMatch(context.Background(), in, league.SourcePlaytomic, "pt-1", false)
		require.NoError(t, err)
		assert.Equal(t, league.SourcePlaytomic, outcome.Result.Source)
		assert.Equal(t, "pt-1", outcome.Result.ExternalID)
		require.Len(t, f.store.RecordMatchCalls, 1)
		assert.Equal(t, "pt-1", f.store.RecordMatchCalls[0].Result.ExternalID)
	})

	t.Run("skips matches imported before", func(t *testing.T) {
		f := newFixture()
		f.store.IsImportedFunc = func(id string) bool { return id == "pt-1" }
		_, err := f.p.ImportMatch(context.Background(), in, league.SourcePlaytomic, "pt-1", false)
		assert.ErrorIs(t, err, ErrAlreadyImported)
		assert.Empty(t, f.store.RecordMatchCalls)
	})
}

func TestProcessor_NotifyResult(t *testing.T) {
	f := newFixture()
	event := pubsub.MatchRecordedEvent{Result: league.MatchResult{ID: "m1"}, DryRun: true}

	require.NoError(t, f.p.NotifyResult(event))
	require.Len(t, f.notif.SendResultNotificationCalls, 1)
	assert.Equal(t, "m1", f.notif.SendResultNotificationCalls[0].Result.ID)
	assert.True(t, f.notif.SendResultNotificationCalls[0].DryRun)
}

func TestProcessor_Ranking(t *testing.T) {
	p, _, teardown := setupLeague(t, "Ana", "Bea", "Carla", "Dani", "Eva")
	defer teardown()
	ctx := context.Background()

	may := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)

	_, err := p.RecordMatch(ctx, league.MatchInput{Winners: anaBea, Losers: carlaDani, Sets: sets(6, 1, 6, 1), PlayedAt: may}, false)
	require.NoError(t, err)
	_, err = p.RecordMatch(ctx, league.MatchInput{Winners: carlaDani, Losers: [2]string{"Ana", "Eva"}, Sets: sets(6, 4, 3, 6, 6, 3), PlayedAt: june}, false)
	require.NoError(t, err)

	t.Run("overall uses accumulated totals", func(t *testing.T) {
		standings, err := p.Ranking(league.RankingFilter{})
		require.NoError(t, err)
		require.Len(t, standings, 5)

		// Ana 3+1=4, Bea 3, Carla 2, Dani 2, Eva 1
		names := make([]string, len(standings))
		for i, st := range standings {
			names[i] = st.Name
			assert.Equal(t, i+1, st.Position)
		}
		assert.Equal(t, []string{"Ana", "Bea", "Carla", "Dani", "Eva"}, names)
		assert.Equal(t, 4, standings[0].Points)
		assert.InDelta(t, 50.0, standings[0].WinPercentage, 0.001)
	})

	t.Run("date range recomputes from matches inside it", func(t *testing.T) {
		standings, err := p.Ranking(league.RankingFilter{
			From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, standings, 5)
		assert.Equal(t, "Carla", standings[0].Name)
		assert.Equal(t, 2, standings[0].Points)
		assert.Equal(t, "Dani", standings[1].Name)
		assert.Equal(t, "Ana", standings[2].Name)
		assert.Equal(t, 1, standings[2].Points)
		assert.Equal(t, "Eva", standings[3].Name)
		assert.Equal(t, "Bea", standings[4].Name)
		assert.Equal(t, 0, standings[4].MatchesPlayed)
	})

	t.Run("player standing", func(t *testing.T) {
		st, err := p.Standing("Bea")
		require.NoError(t, err)
		assert.Equal(t, 2, st.Position)

		st, err = p.Standing("  Bea ")
		require.NoError(t, err)
		assert.Equal(t, "Bea", st.Name)
		assert.Equal(t, 2, st.Position)
		_, err = p.Standing("Zoe")
		assert.True(t, league.IsNotFound(err))
	})
}

func TestProcessor_RecordMatchTwice(t *testing.T) {
	p, _, teardown := setupLeague(t, "Ana", "Bea", "Carla", "Dani")
	defer teardown()
	ctx := context.Background()

	in := league.MatchInput{
		Winners:  anaBea,
		Losers:   carlaDani,
		Sets:     sets(6, 3, 6, 4),
		PlayedAt: time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC),
	}
	first, err := p.RecordMatch(ctx, in, false)
	require.NoError(t, err)
	second, err := p.RecordMatch(ctx, in, false)
	require.NoError(t, err)
	assert.NotEqual(t, first.Result.ID, second.Result.ID)

	ana, err := p.GetPlayer("Ana")
	require.NoError(t, err)
	assert.Equal(t, 2, ana.MatchesPlayed)
	assert.Equal(t, 2, ana.MatchesWon)

	dani, err := p.GetPlayer("Dani")
	require.NoError(t, err)
	assert.Equal(t, 2, dani.MatchesPlayed)
	assert.Equal(t, 0, dani.MatchesWon)

	matches, err := p.ListMatches()
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestProcessor_HeadToHead(t *testing.T) {
	p, notif, teardown := setupLeague(t, "Ana", "Bea", "Carla", "Dani", "Eva")
	defer teardown()
	ctx := context.Background()

	t.Run("recorded match surfaces in head to head", func(t *testing.T) {
		outcome, err := p.RecordMatch(ctx, league.MatchInput{Winners: anaBea, Losers: carlaDani, Sets: sets(7, 5, 6, 3)}, false)
		require.NoError(t, err)
		require.Len(t, notif.SendResultNotificationCalls, 1, "disabled pubsub notifies directly")

		for _, pair := range [][2]string{{"Ana", "Bea"}, {"Ana", "Carla"}, {"Dani", "Bea"}} {
			h2h, err := p.HeadToHead(pair[0], pair[1])
			require.NoError(t, err)
			require.Len(t, h2h.Matches, 1, pair)
			assert.Equal(t, outcome.Result.ID, h2h.Matches[0].ID)
		}
	})

	t.Run("wins are counted per player", func(t *testing.T) {
		_, err := p.RecordMatch(ctx, league.MatchInput{Winners: [2]string{"Carla", "Eva"}, Losers: anaBea, Sets: sets(6, 4, 6, 4)}, false)
		require.NoError(t, err)

		h2h, err := p.HeadToHead("Ana", "Carla")
		require.NoError(t, err)
		assert.Len(t, h2h.Matches, 2)
		assert.Equal(t, 1, h2h.WinsA)
		assert.Equal(t, 1, h2h.WinsB)

		h2h, err = p.HeadToHead("Ana", "Bea")
		require.NoError(t, err)
		assert.Equal(t, 1, h2h.WinsA, "partners both get the win")
		assert.Equal(t, 1, h2h.WinsB)
	})

	t.Run("never played together", func(t *testing.T) {
		h2h, err := p.HeadToHead("Dani", "Eva")
		require.NoError(t, err)
		assert.NotNil(t, h2h.Matches)
		assert.Empty(t, h2h.Matches)
	})

	t.Run("same player twice", func(t *testing.T) {
		_, err := p.HeadToHead("Ana", "Ana")
		invalid, ok := league.IsInvalidMatch(err)
		require.True(t, ok)
		assert.True(t, invalid.Has(league.RuleDistinctPlayers))
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := p.HeadToHead("Ana", "Zoe")
		assert.True(t, league.IsNotFound(err))
	})
}

func TestProcessor_Players(t *testing.T) {
	p, _, teardown := setupLeague(t, "carla", "Ana", "Bea")
	defer teardown()

	players, err := p.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "Ana", players[0].Name)
	assert.Equal(t, "Bea", players[1].Name)
	assert.Equal(t, "carla", players[2].Name)

	_, err = p.RegisterPlayer("Ana", "")
	assert.ErrorIs(t, err, league.ErrPlayerExists)

	player, err := p.GetPlayer(" Bea ")
	require.NoError(t, err)
	assert.Equal(t, "Bea", player.Name)

	p.Clear()
	players, err = p.ListPlayers()
	require.NoError(t, err)
	assert.Empty(t, players)
}
