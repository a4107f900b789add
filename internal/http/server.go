package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/config"
	"github.com/mauv0809/padel-league/internal/http/handlers"
	"github.com/mauv0809/padel-league/internal/importer"
	"github.com/mauv0809/padel-league/internal/inngest"
	"github.com/mauv0809/padel-league/internal/metrics"
	"github.com/mauv0809/padel-league/internal/notifier"
	"github.com/mauv0809/padel-league/internal/processor"
	"github.com/mauv0809/padel-league/internal/pubsub"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, importer *importer.Importer, pubsub pubsub.PubSubClient, inngestClient inngest.InngestClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Players:        club.NewPlayerMatcher(store),
		Importer:       importer,
		Inngest:        inngestClient,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(handler, paramsMiddleware, authMiddleware)
	slackAuth := slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Get("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware).ServeHTTP)
	s.Router.Post("/clear", Chain(handlers.ClearStoreHandler(s.Processor), paramsMiddleware).ServeHTTP)

	s.Router.Get("/players", Chain(handlers.ListPlayersHandler(s.Processor), paramsMiddleware).ServeHTTP)
	s.Router.Post("/players", Chain(handlers.RegisterPlayerHandler(s.Processor), paramsMiddleware).ServeHTTP)
	s.Router.Get("/players/{name}", Chain(handlers.GetPlayerHandler(s.Processor), paramsMiddleware).ServeHTTP)
	s.Router.Get("/matches", Chain(handlers.ListMatchesHandler(s.Processor), paramsMiddleware).ServeHTTP)
	s.Router.Post("/matches", Chain(handlers.SubmitMatchHandler(s.Processor), paramsMiddleware).ServeHTTP)
	s.Router.Get("/ranking", Chain(handlers.RankingHandler(s.Processor), paramsMiddleware).ServeHTTP)
	s.Router.Get("/head-to-head", Chain(handlers.HeadToHeadHandler(s.Processor), paramsMiddleware).ServeHTTP)

	s.Router.Post("/import", Chain(handlers.ImportHandler(s.Importer, s.Inngest), paramsMiddleware).ServeHTTP)
	if s.Inngest != nil {
		s.Router.Handle("/api/inngest", s.Inngest.Serve())
	}
	s.Router.Post("/notify-result", Chain(handlers.NotifyResultHandler(s.Processor, s.pubsub), paramsMiddleware).ServeHTTP)

	s.Router.Post("/slack/command/ranking", Chain(handlers.RankingCommandHandler(s.Processor, s.Notifier), paramsMiddleware, slackAuth).ServeHTTP)
	s.Router.Post("/slack/command/h2h", Chain(handlers.HeadToHeadCommandHandler(s.Processor, s.Players, s.Notifier), paramsMiddleware, slackAuth).ServeHTTP)
	s.Router.Post("/slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Processor, s.Players, s.Notifier), paramsMiddleware, slackAuth).ServeHTTP)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
