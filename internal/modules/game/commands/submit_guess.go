package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/modiphy/movie-chain-go/internal/modules/catalog"
	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

// Catalog is the slice of the movie catalog the game commands need.
type Catalog interface {
	GetMovieCredits(ctx context.Context, movieID int64) ([]catalog.CastMember, error)
	GetMovieDetails(ctx context.Context, movieID int64) (catalog.Movie, error)
}

type GuessMovie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type SubmitGuessCommand struct {
	GameID string     `json:"-"`
	TurnID string     `json:"turnId"`
	UserID uuid.UUID  `json:"-"`
	Movie  GuessMovie `json:"movie"`
}

func (c SubmitGuessCommand) Validate() error {
	if c.GameID == "" {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.TurnID == "" {
		return fmt.Errorf("invalid TurnID - '%s'", c.TurnID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	if c.Movie.ID < 1 {
		return fmt.Errorf("invalid Movie.ID - '%d'", c.Movie.ID)
	}

	return nil
}

func HandleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command, err := core.RequestBody[SubmitGuessCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.GameID = chi.URLParam(r, "id")
	command.UserID = core.Session(ctx).UserID

	outcome, err := mediator.Send[SubmitGuessCommand, domain.Outcome](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, outcome)
}

type SubmitGuessCommandHandler struct {
	store   game.Store
	catalog Catalog
}

func NewSubmitGuessCommandHandler(store game.Store, catalog Catalog) *SubmitGuessCommandHandler {
	return &SubmitGuessCommandHandler{store: store, catalog: catalog}
}

// Handle resolves one guess end to end: evaluate it against the active turn,
// apply the actor reuse cap, and commit the resulting turn and game
// transitions as a single transaction. The catalog round-trips happen before
// the transaction opens, so a catalog failure leaves no partial writes.
func (h *SubmitGuessCommandHandler) Handle(
	ctx context.Context,
	request SubmitGuessCommand,
) (domain.Outcome, error) {
	g, err := h.store.GetGame(ctx, request.GameID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Outcome{}, core.NewCommandError(http.StatusNotFound, err, core.WithReason("game not found"))
	case err != nil:
		return domain.Outcome{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	if g.Status == domain.GameStatusCompleted {
		return domain.Outcome{}, core.NewCommandError(
			http.StatusConflict,
			fmt.Errorf("game %s is already completed", g.ID),
		)
	}

	if request.UserID != g.CurrentTurnUserID {
		return domain.NotYourTurnOutcome(), nil
	}

	activeTurn, err := h.store.GetActiveTurn(ctx, request.GameID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Outcome{}, core.NewCommandError(http.StatusNotFound, err, core.WithReason("turn not found"))
	case err != nil:
		return domain.Outcome{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	// Guessing the turn's own movie is a no-op. Checked before the catalog
	// round-trip so it costs nothing.
	if request.Movie.ID == activeTurn.MovieID {
		return domain.NoOpOutcome(), nil
	}

	usedMovieIDs, err := h.store.ListTurnMovieIDs(ctx, request.GameID)
	if err != nil {
		return domain.Outcome{}, core.NewCommandError(http.StatusInternalServerError, err)
	}
	if domain.Int64List(usedMovieIDs).Contains(request.Movie.ID) {
		return domain.MovieAlreadyUsedOutcome(), nil
	}

	guessedMovie, err := h.resolveMovie(ctx, request.Movie)
	if err != nil {
		return domain.Outcome{}, core.NewCommandError(http.StatusBadGateway, err)
	}

	guessedCast, err := h.catalog.GetMovieCredits(ctx, request.Movie.ID)
	if err != nil {
		return domain.Outcome{}, core.NewCommandError(http.StatusBadGateway, err)
	}

	cast := core.Map(guessedCast, func(m catalog.CastMember) domain.CastMember {
		return domain.CastMember{ID: m.ID, Name: m.Name}
	})

	verdict := domain.EvaluateGuess(activeTurn.CastIDs, cast)

	var outcome domain.Outcome
	err = h.store.InTx(ctx, func(ctx context.Context, s game.Store) error {
		// Re-read under lock. If the turn the caller saw is no longer the
		// active one, a concurrent guess got there first.
		lockedTurn, err := s.GetActiveTurnForUpdate(ctx, request.GameID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return core.NewCommandError(http.StatusConflict, err, core.WithReason("turn already resolved"))
		case err != nil:
			return err
		}

		if lockedTurn.ID != request.TurnID || lockedTurn.ID != activeTurn.ID {
			return core.NewCommandError(
				http.StatusConflict,
				fmt.Errorf("turn %s is no longer the active turn", request.TurnID),
			)
		}

		if verdict.Success {
			priorCasts, err := s.ListSuccessTurnCasts(ctx, request.GameID)
			if err != nil {
				return err
			}

			if check := domain.CheckActorReuse(priorCasts, verdict.CommonCast); !check.Allowed {
				if err := s.CreateNotification(ctx, request.UserID, domain.ActorReuseNotice); err != nil {
					return err
				}
				outcome = domain.RejectedOutcome(check.OverusedActor)
				return nil
			}

			return h.advance(ctx, s, g, lockedTurn, guessedMovie, cast, verdict.CommonCast, &outcome)
		}

		return h.recordMiss(ctx, s, g, lockedTurn, guessedMovie, &outcome)
	})
	if err != nil {
		var commandErr core.CommandError
		if errors.As(err, &commandErr) {
			return domain.Outcome{}, commandErr
		}
		return domain.Outcome{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	return outcome, nil
}

// resolveMovie fills in the guessed movie's title and year from the catalog
// when the caller only sent an id.
func (h *SubmitGuessCommandHandler) resolveMovie(ctx context.Context, m GuessMovie) (domain.Movie, error) {
	if m.Title != "" && m.Year != 0 {
		return domain.Movie{ID: m.ID, Title: m.Title, Year: m.Year}, nil
	}

	details, err := h.catalog.GetMovieDetails(ctx, m.ID)
	if err != nil {
		return domain.Movie{}, err
	}

	return domain.Movie{ID: details.ID, Title: details.Title, Year: details.Year}, nil
}

func (h *SubmitGuessCommandHandler) advance(
	ctx context.Context,
	s game.Store,
	g domain.Game,
	turn domain.Turn,
	movie domain.Movie,
	cast []domain.CastMember,
	commonCast domain.CastMembers,
	outcome *domain.Outcome,
) error {
	guess := domain.Guess{
		ID:         uuid.NewString(),
		TurnID:     turn.ID,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		MovieYear:  movie.Year,
		Result:     true,
	}
	if err := s.CreateGuess(ctx, guess); err != nil {
		return err
	}

	if err := s.UpdateTurnStatus(ctx, turn.ID, domain.TurnStatusSuccess, commonCast); err != nil {
		return err
	}

	nextUserID := g.Opponent(turn.UserID)

	nextTurn := domain.Turn{
		ID:         uuid.NewString(),
		GameID:     g.ID,
		UserID:     nextUserID,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		MovieYear:  movie.Year,
		CastIDs:    domain.Int64List(core.Map(cast, func(m domain.CastMember) int64 { return m.ID })),
		Status:     domain.TurnStatusInProgress,
	}
	if err := s.CreateTurn(ctx, nextTurn); err != nil {
		return err
	}

	if err := s.AdvanceGame(ctx, g.ID, nextUserID); err != nil {
		return err
	}

	*outcome = domain.AdvancedOutcome(nextUserID, commonCast)
	return nil
}

func (h *SubmitGuessCommandHandler) recordMiss(
	ctx context.Context,
	s game.Store,
	g domain.Game,
	turn domain.Turn,
	movie domain.Movie,
	outcome *domain.Outcome,
) error {
	priorGuesses, err := s.CountGuesses(ctx, turn.ID)
	if err != nil {
		return err
	}

	guess := domain.Guess{
		ID:         uuid.NewString(),
		TurnID:     turn.ID,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		MovieYear:  movie.Year,
		Result:     false,
	}
	if err := s.CreateGuess(ctx, guess); err != nil {
		return err
	}

	if priorGuesses+1 < domain.MaxGuessesPerTurn {
		*outcome = domain.MissOutcome(domain.MaxGuessesPerTurn - priorGuesses - 1)
		return nil
	}

	// Third failed guess. The turn's owner failed to connect, so the game
	// ends in the opponent's favor.
	if err := s.UpdateTurnStatus(ctx, turn.ID, domain.TurnStatusFail, nil); err != nil {
		return err
	}

	winnerID := g.Opponent(turn.UserID)
	if err := s.CompleteGame(ctx, g.ID, g.ResultFor(winnerID), domain.WinConditionWrongGuess); err != nil {
		return err
	}

	*outcome = domain.GameOverOutcome(winnerID)
	return nil
}
