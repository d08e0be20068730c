package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"path"

	"github.com/modiphy/movie-chain-go/internal/modules/catalog"
	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type RematchCommand struct {
	GameID string    `json:"-"`
	UserID uuid.UUID `json:"-"`
}

func (c RematchCommand) Validate() error {
	if c.GameID == "" {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type RematchResponse struct {
	GameID string `json:"gameId"`
}

func HandleRematch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command := RematchCommand{
		GameID: chi.URLParam(r, "id"),
		UserID: core.Session(ctx).UserID,
	}

	response, err := mediator.Send[RematchCommand, RematchResponse](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "games", response.GameID)
	core.WriteCreated(w, r, location)
}

type RematchCommandHandler struct {
	store   game.Store
	catalog Catalog
	rng     *rand.Rand
}

func NewRematchCommandHandler(store game.Store, catalog Catalog, rng *rand.Rand) *RematchCommandHandler {
	return &RematchCommandHandler{store: store, catalog: catalog, rng: rng}
}

// Handle opens a fresh game between the same two players, seeded with a new
// starting movie. The requesting player keeps their seat, and their opponent
// takes the first turn.
func (h *RematchCommandHandler) Handle(
	ctx context.Context,
	request RematchCommand,
) (RematchResponse, error) {
	previous, err := h.store.GetGame(ctx, request.GameID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return RematchResponse{}, core.NewCommandError(http.StatusNotFound, err, core.WithReason("game not found"))
	case err != nil:
		return RematchResponse{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	if !previous.HasPlayer(request.UserID) {
		return RematchResponse{}, core.NewCommandError(
			http.StatusForbidden,
			fmt.Errorf("user %s is not a player of game %s", request.UserID, request.GameID),
		)
	}

	movie := domain.PickSeedMovie(h.rng)

	cast, err := h.catalog.GetMovieCredits(ctx, movie.ID)
	if err != nil {
		return RematchResponse{}, core.NewCommandError(http.StatusBadGateway, err)
	}

	opponentID := previous.Opponent(request.UserID)

	g := domain.Game{
		ID:                uuid.NewString(),
		Player1ID:         previous.Player1ID,
		Player2ID:         previous.Player2ID,
		CurrentTurnUserID: opponentID,
		Status:            domain.GameStatusPending,
	}

	firstTurn := domain.Turn{
		ID:         uuid.NewString(),
		GameID:     g.ID,
		UserID:     opponentID,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		MovieYear:  movie.Year,
		CastIDs: domain.Int64List(core.Map(cast, func(m catalog.CastMember) int64 {
			return m.ID
		})),
		Status: domain.TurnStatusInProgress,
	}

	err = h.store.InTx(ctx, func(ctx context.Context, s game.Store) error {
		if err := s.CreateGame(ctx, g); err != nil {
			return err
		}
		return s.CreateTurn(ctx, firstTurn)
	})
	if err != nil {
		return RematchResponse{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	return RematchResponse{GameID: g.ID}, nil
}
