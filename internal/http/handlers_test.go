package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/config"
	"github.com/mauv0809/padel-league/internal/database"
	"github.com/mauv0809/padel-league/internal/importer"
	"github.com/mauv0809/padel-league/internal/inngest"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/notifier"
	"github.com/mauv0809/padel-league/internal/playtomic"
	"github.com/mauv0809/padel-league/internal/processor"
	"github.com/mauv0809/padel-league/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, playtomicClient playtomic.PlaytomicClient, notifier notifier.Notifier, slackSigningSecret string) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clubStore := club.New(db)
	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	// Publishing is disabled so results are announced directly.
	ps := pubsub.NewMock()
	ps.SendMessageFunc = func(topic pubsub.EventType, data any) error { return pubsub.ErrDisabled }
	ps.ProcessMessageFunc = func(data []byte, returnValue any) error {
		return msgpack.Unmarshal(data, returnValue)
	}

	proc := processor.New(clubStore, notifier, metricsSvc, ps, league.DefaultPolicy())
	im := importer.New(playtomicClient, proc, clubStore, club.NewPlayerMatcher(clubStore), metricsSvc, "tenant-1")
	server := NewServer(clubStore, metricsSvc, metricsHandler, cfg, notifier, proc, im, ps, nil)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

func addPlayers(t *testing.T, server *Server, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := server.Store.AddPlayer(name, "")
		require.NoError(t, err)
	}
}

func recordMatch(t *testing.T, server *Server, winners, losers [2]string, score string) {
	t.Helper()
	sets, err := league.ParseSets(score)
	require.NoError(t, err)
	_, err = server.Processor.RecordMatch(t.Context(), league.MatchInput{Winners: winners, Losers: losers, Sets: sets}, false)
	require.NoError(t, err)
}

func serve(server *Server, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string, timestamp time.Time) *http.Request {
	t.Helper()

	body := form.Encode()
	req, err := http.NewRequest("POST", targetURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ts := strconv.FormatInt(timestamp.Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", ts)

	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(fmt.Sprintf("v0:%s:%s", ts, body)))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))
	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	rr := serve(server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()
	addPlayers(t, server, "Ana", "Bea", "Carla", "Dani")
	recordMatch(t, server, [2]string{"Ana", "Bea"}, [2]string{"Carla", "Dani"}, "6-4, 6-4")

	rr := serve(server, "GET", "/metrics", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "padel_matches_recorded_total 1")
}

func TestPlayersHandlers(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	t.Run("register", func(t *testing.T) {
		rr := serve(server, "POST", "/players", map[string]string{"name": "Bea"})
		assert.Equal(t, http.StatusCreated, rr.Code)
		rr = serve(server, "POST", "/players", map[string]string{"name": "ana"})
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		rr := serve(server, "POST", "/players", map[string]string{"name": "Bea"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		rr := serve(server, "POST", "/players", map[string]string{"name": "  "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("dry run registers nothing", func(t *testing.T) {
		rr := serve(server, "POST", "/players?dry_run=true", map[string]string{"name": "Carla"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, server.Store.IsKnownPlayer("Carla"))
	})

	t.Run("list is sorted by name", func(t *testing.T) {
		rr := serve(server, "GET", "/players", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var players []league.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
		require.Len(t, players, 2)
		assert.Equal(t, "ana", players[0].Name)
		assert.Equal(t, "Bea", players[1].Name)
	})

	t.Run("get", func(t *testing.T) {
		rr := serve(server, "GET", "/players/Bea", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"name":"Bea"`)

		rr = serve(server, "GET", "/players/Nobody", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSubmitMatchHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()
	addPlayers(t, server, "Ana", "Bea", "Carla", "Dani")

	t.Run("winners and losers with a score string", func(t *testing.T) {
		rr := serve(server, "POST", "/matches", map[string]any{
			"winners": []string{"Ana", "Bea"},
			"losers":  []string{"Carla", "Dani"},
			"score":   "6-4, 3-6, 7-5",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var outcome league.Outcome
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
		assert.NotEmpty(t, outcome.Result.ID)
		assert.Equal(t, 2, outcome.Deltas["Ana"].Points)
		assert.Equal(t, 1, outcome.Deltas["Dani"].Points)
		assert.Len(t, mockNotifier.SendResultNotificationCalls, 1)
	})

	t.Run("pairs with sets", func(t *testing.T) {
		rr := serve(server, "POST", "/matches", map[string]any{
			"pair_a": []string{"Ana", "Carla"},
			"pair_b": []string{"Bea", "Dani"},
			"sets":   []map[string]int{{"a": 2, "b": 6}, {"a": 4, "b": 6}},
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var outcome league.Outcome
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
		assert.ElementsMatch(t, []string{"Bea", "Dani"}, outcome.Result.Winners[:])
	})

	t.Run("invalid match lists the broken rules", func(t *testing.T) {
		rr := serve(server, "POST", "/matches", map[string]any{
			"winners": []string{"Ana", "Bea"},
			"losers":  []string{"Carla", "Dani"},
			"score":   "6-6, 6-4",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), string(league.RuleTiedSet))
	})

	t.Run("malformed score", func(t *testing.T) {
		rr := serve(server, "POST", "/matches", map[string]any{
			"winners": []string{"Ana", "Bea"},
			"losers":  []string{"Carla", "Dani"},
			"score":   "six-four",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), string(league.RuleMalformedScore))
	})

	t.Run("unknown player", func(t *testing.T) {
		rr := serve(server, "POST", "/matches", map[string]any{
			"winners": []string{"Ana", "Eve"},
			"losers":  []string{"Carla", "Dani"},
			"score":   "6-4, 6-4",
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing sides", func(t *testing.T) {
		rr := serve(server, "POST", "/matches", map[string]any{"score": "6-4, 6-4"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = serve(server, "POST", "/matches", map[string]any{"winners": []string{"Ana"}, "losers": []string{"Carla", "Dani"}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("dry run stores nothing", func(t *testing.T) {
		before, err := server.Processor.ListMatches()
		require.NoError(t, err)

		rr := serve(server, "POST", "/matches?dry_run=true", map[string]any{
			"winners": []string{"Ana", "Bea"},
			"losers":  []string{"Carla", "Dani"},
			"score":   "6-0, 6-0",
		})
		assert.Equal(t, http.StatusOK, rr.Code)

		after, err := server.Processor.ListMatches()
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("list", func(t *testing.T) {
		rr := serve(server, "GET", "/matches", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var matches []league.MatchResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
		assert.Len(t, matches, 2)
	})
}

func TestRankingHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()
	addPlayers(t, server, "Ana", "Bea", "Carla", "Dani")

	june := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 10, 18, 0, 0, 0, time.UTC)
	for _, m := range []struct {
		winners, losers [2]string
		playedAt        time.Time
	}{
		{[2]string{"Ana", "Bea"}, [2]string{"Carla", "Dani"}, june},
		{[2]string{"Carla", "Dani"}, [2]string{"Ana", "Bea"}, july},
		{[2]string{"Carla", "Dani"}, [2]string{"Ana", "Bea"}, july},
	} {
		_, err := server.Processor.RecordMatch(t.Context(), league.MatchInput{
			Winners: m.winners, Losers: m.losers,
			Sets:     []league.SetScore{{A: 6, B: 2}, {A: 6, B: 2}},
			PlayedAt: m.playedAt,
		}, false)
		require.NoError(t, err)
	}

	decode := func(t *testing.T, rr *httptest.ResponseRecorder) []league.Standing {
		t.Helper()
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var standings []league.Standing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
		require.Len(t, standings, 4)
		return standings
	}

	t.Run("overall", func(t *testing.T) {
		standings := decode(t, serve(server, "GET", "/ranking", nil))
		assert.Equal(t, 1, standings[0].Position)
		assert.Contains(t, []string{"Carla", "Dani"}, standings[0].Name)
		assert.Equal(t, 6, standings[0].Points)
	})

	t.Run("june only", func(t *testing.T) {
		standings := decode(t, serve(server, "GET", "/ranking?from=2025-06-01&to=2025-06-30", nil))
		assert.Contains(t, []string{"Ana", "Bea"}, standings[0].Name)
		assert.Equal(t, 3, standings[0].Points)
	})

	t.Run("bad dates", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(server, "GET", "/ranking?from=June", nil).Code)
		assert.Equal(t, http.StatusBadRequest, serve(server, "GET", "/ranking?from=2025-07-01&to=2025-06-01", nil).Code)
	})
}

func TestHeadToHeadHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()
	addPlayers(t, server, "Ana", "Bea", "Carla", "Dani")
	recordMatch(t, server, [2]string{"Ana", "Bea"}, [2]string{"Carla", "Dani"}, "6-4, 6-4")

	rr := serve(server, "GET", "/head-to-head?a=Ana&b=Carla", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var h2h league.HeadToHead
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &h2h))
	assert.Equal(t, 1, h2h.WinsA)
	assert.Equal(t, 0, h2h.WinsB)
	assert.Len(t, h2h.Matches, 1)

	assert.Equal(t, http.StatusBadRequest, serve(server, "GET", "/head-to-head?a=Ana", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(server, "GET", "/head-to-head?a=Ana&b=Ana", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(server, "GET", "/head-to-head?a=Ana&b=Eve", nil).Code)
}

func TestImportHandler(t *testing.T) {
	mockClient := playtomic.NewMockClient()
	mockClient.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return []playtomic.MatchSummary{{MatchID: "pt-1"}}, nil
	}
	mockClient.GetSpecificMatchFunc = func(matchID string) (playtomic.PadelMatch, error) {
		return playtomic.PadelMatch{
			MatchID:       matchID,
			Start:         time.Date(2025, 7, 9, 18, 0, 0, 0, time.UTC),
			GameStatus:    playtomic.GameStatusPlayed,
			ResultsStatus: playtomic.ResultsStatusConfirmed,
			Teams: []playtomic.Team{
				{ID: "t1", TeamResult: playtomic.TeamResultWon, Players: []playtomic.Player{{Name: "Ana"}, {Name: "Bea"}}},
				{ID: "t2", TeamResult: "LOST", Players: []playtomic.Player{{Name: "Carla"}, {Name: "Dani"}}},
			},
			Results: []playtomic.SetResult{
				{Name: "Set 1", Scores: map[string]int{"t1": 6, "t2": 3}},
				{Name: "Set 2", Scores: map[string]int{"t1": 6, "t2": 4}},
			},
		}, nil
	}

	server, teardown := setupTestServer(t, mockClient, notifier.NewMock(), "")
	defer teardown()
	addPlayers(t, server, "Ana", "Bea", "Carla", "Dani")

	rr := serve(server, "POST", "/import?days=7", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var report importer.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Fetched)
	assert.Equal(t, 1, report.Imported)
	assert.True(t, server.Store.IsImported("pt-1"))

	rr = serve(server, "POST", "/import", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Skipped)
}

func TestImportHandler_Async(t *testing.T) {
	mockClient := playtomic.NewMockClient()
	server, teardown := setupTestServer(t, mockClient, notifier.NewMock(), "")
	defer teardown()

	scheduler := inngest.NewMock()
	server.Inngest = scheduler
	server.Router = chi.NewRouter()
	server.routes()

	rr := serve(server, "POST", "/import?async=true&days=3&dry_run=true", nil)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Contains(t, rr.Body.String(), "event-id")
	assert.Equal(t, []inngest.ImportRequest{{Days: 3, DryRun: true}}, scheduler.RequestImportCalls)
	assert.Empty(t, mockClient.GetMatchesCalls)
}

func TestNotifyResultHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	event := pubsub.MatchRecordedEvent{Result: league.MatchResult{
		ID:      "m1",
		Winners: [2]string{"Ana", "Bea"},
		Losers:  [2]string{"Carla", "Dani"},
		Sets:    []league.SetScore{{A: 6, B: 4}, {A: 6, B: 4}},
	}}
	raw, err := msgpack.Marshal(event)
	require.NoError(t, err)
	push := map[string]any{
		"subscription": "projects/test/subscriptions/notify-result",
		"message":      map[string]string{"data": base64.StdEncoding.EncodeToString(raw)},
	}

	rr := serve(server, "POST", "/notify-result", push)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendResultNotificationCalls, 1)
	assert.Equal(t, "m1", mockNotifier.SendResultNotificationCalls[0].Result.ID)
	assert.False(t, mockNotifier.SendResultNotificationCalls[0].DryRun)

	rr = serve(server, "POST", "/notify-result", map[string]any{"message": map[string]string{"data": "%%%"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSlackCommands(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, testSlackSigningSecret)
	defer teardown()
	addPlayers(t, server, "Ana Jensen", "Bea Holm", "Carla Berg", "Dani Lund")
	recordMatch(t, server, [2]string{"Ana Jensen", "Bea Holm"}, [2]string{"Carla Berg", "Dani Lund"}, "6-4, 6-4")
	now := time.Now()

	t.Run("rejects a stale signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/ranking", url.Values{}, testSlackSigningSecret, now.Add(-6*time.Minute))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/ranking", url.Values{}, "wrong-secret", now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ranking", func(t *testing.T) {
		mockNotifier.Reset()
		req := createSlackCommandRequest(t, "/slack/command/ranking", url.Values{"text": {""}}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatRankingResponseCalls, 1)
		assert.Len(t, mockNotifier.FormatRankingResponseCalls[0], 4)
	})

	t.Run("ranking with bad dates", func(t *testing.T) {
		mockNotifier.Reset()
		req := createSlackCommandRequest(t, "/slack/command/ranking", url.Values{"text": {"last-week"}}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, mockNotifier.FormatErrorResponseCalls, 1)
		assert.Empty(t, mockNotifier.FormatRankingResponseCalls)
	})

	t.Run("head-to-head resolves first names", func(t *testing.T) {
		mockNotifier.Reset()
		req := createSlackCommandRequest(t, "/slack/command/h2h", url.Values{"text": {"ana vs Carla"}}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatHeadToHeadResponseCalls, 1)
		h2h := mockNotifier.FormatHeadToHeadResponseCalls[0]
		assert.Equal(t, "Ana Jensen", h2h.PlayerA)
		assert.Equal(t, "Carla Berg", h2h.PlayerB)
		assert.Equal(t, 1, h2h.WinsA)
	})

	t.Run("head-to-head usage", func(t *testing.T) {
		mockNotifier.Reset()
		req := createSlackCommandRequest(t, "/slack/command/h2h", url.Values{"text": {"Ana Jensen"}}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, mockNotifier.FormatErrorResponseCalls, 1)
	})

	t.Run("player stats", func(t *testing.T) {
		mockNotifier.Reset()
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{"text": {"Bea Holm"}}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatPlayerStatsResponseCalls, 1)
		assert.Equal(t, "Bea Holm", mockNotifier.FormatPlayerStatsResponseCalls[0].Name)
		assert.Equal(t, 3, mockNotifier.FormatPlayerStatsResponseCalls[0].Points)
	})

	t.Run("player stats for an unknown player", func(t *testing.T) {
		mockNotifier.Reset()
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{"text": {"Zorro"}}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatPlayerNotFoundResponseCalls, 1)
		assert.Equal(t, "Zorro", mockNotifier.FormatPlayerNotFoundResponseCalls[0].Query)
		assert.Empty(t, mockNotifier.FormatPlayerStatsResponseCalls)
	})

	t.Run("player stats without a name", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{}, testSlackSigningSecret, now)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()
	addPlayers(t, server, "Ana")

	rr := serve(server, "POST", "/clear?dry_run=true", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, server.Store.IsKnownPlayer("Ana"))

	rr = serve(server, "POST", "/clear", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, server.Store.IsKnownPlayer("Ana"))
}
