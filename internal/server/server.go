package server

import (
	"context"
	"database/sql"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/modiphy/movie-chain-go/internal/config"
	"github.com/modiphy/movie-chain-go/internal/modules/catalog"
	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game"
	gamecommands "github.com/modiphy/movie-chain-go/internal/modules/game/commands"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"
	gamequeries "github.com/modiphy/movie-chain-go/internal/modules/game/queries"
	"github.com/modiphy/movie-chain-go/internal/modules/notification"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = (*HTTPServer)(nil)

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
	db     *sql.DB
}

func NewHTTPServer(cfg config.Config) (Server, error) {
	baseCtx := context.Background()

	core.SetLogger(cfg.Logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: cfg.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: cfg.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	store := game.NewSQLStore(db)

	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL:  cfg.Catalog.BaseURL,
		APIToken: cfg.Catalog.APIToken,
		HTTPClient: &http.Client{
			Timeout: cfg.Catalog.RequestTimeout,
		},
	})

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// handler registration

	// game

	submitGuessHandler := gamecommands.NewSubmitGuessCommandHandler(store, catalogClient)
	err = mediator.RegisterRequestHandler[gamecommands.SubmitGuessCommand, domain.Outcome](
		submitGuessHandler,
	)
	if err != nil {
		return nil, err
	}

	createGameHandler := gamecommands.NewCreateGameCommandHandler(store, catalogClient, rng)
	err = mediator.RegisterRequestHandler[gamecommands.CreateGameCommand, gamecommands.CreateGameResponse](
		createGameHandler,
	)
	if err != nil {
		return nil, err
	}

	rematchHandler := gamecommands.NewRematchCommandHandler(store, catalogClient, rng)
	err = mediator.RegisterRequestHandler[gamecommands.RematchCommand, gamecommands.RematchResponse](
		rematchHandler,
	)
	if err != nil {
		return nil, err
	}

	forfeitHandler := gamecommands.NewForfeitCommandHandler(store)
	err = mediator.RegisterRequestHandler[gamecommands.ForfeitCommand, core.Unit](
		forfeitHandler,
	)
	if err != nil {
		return nil, err
	}

	getGameHandler := gamequeries.NewGetGameQueryHandler(db)
	err = mediator.RegisterRequestHandler[gamequeries.GetGameQuery, gamequeries.GameView](
		getGameHandler,
	)
	if err != nil {
		return nil, err
	}

	getPlayerGamesHandler := gamequeries.NewGetPlayerGamesQueryHandler(db)
	err = mediator.RegisterRequestHandler[gamequeries.GetPlayerGamesQuery, []domain.Game](
		getPlayerGamesHandler,
	)
	if err != nil {
		return nil, err
	}

	// catalog

	searchMoviesHandler := catalog.NewSearchMoviesQueryHandler(catalogClient)
	err = mediator.RegisterRequestHandler[catalog.SearchMoviesQuery, []catalog.Movie](
		searchMoviesHandler,
	)
	if err != nil {
		return nil, err
	}

	// notification

	getLatestNotificationHandler := notification.NewGetLatestNotificationQueryHandler(db)
	err = mediator.RegisterRequestHandler[notification.GetLatestNotificationQuery, notification.GetLatestNotificationResponse](
		getLatestNotificationHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	r := chi.NewRouter()
	r.Use(core.CorrelationIDMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(core.RequestUserMiddleware)

		r.Get("/games", gamequeries.HandleGetPlayerGames)
		r.Post("/games", gamecommands.HandleCreateGame)
		r.Get("/games/{id}", gamequeries.HandleGetGame)
		r.Post("/games/{id}/guesses", gamecommands.HandleSubmitGuess)
		r.Post("/games/{id}/actions/rematch", gamecommands.HandleRematch)
		r.Post("/games/{id}/actions/forfeit", gamecommands.HandleForfeit)

		r.Get("/notifications/latest", notification.HandleGetLatestNotification)
	})

	r.Get("/movies/search", catalog.HandleSearchMovies)

	server := http.Server{
		Addr:        net.JoinHostPort("", strconv.Itoa(cfg.Port)),
		Handler:     r,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	return &HTTPServer{server: &server, db: db}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	return s.db.Close()
}
