package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ForfeitCommand struct {
	GameID string    `json:"-"`
	UserID uuid.UUID `json:"-"`
}

func (c ForfeitCommand) Validate() error {
	if c.GameID == "" {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleForfeit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command := ForfeitCommand{
		GameID: chi.URLParam(r, "id"),
		UserID: core.Session(ctx).UserID,
	}

	_, err := mediator.Send[ForfeitCommand, core.Unit](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

type ForfeitCommandHandler struct {
	store game.Store
}

func NewForfeitCommandHandler(store game.Store) *ForfeitCommandHandler {
	return &ForfeitCommandHandler{store: store}
}

// Handle concedes the game on behalf of the requesting player. The active
// turn fails and the game completes in the opponent's favor.
func (h *ForfeitCommandHandler) Handle(
	ctx context.Context,
	request ForfeitCommand,
) (core.Unit, error) {
	err := h.store.InTx(ctx, func(ctx context.Context, s game.Store) error {
		g, err := s.GetGame(ctx, request.GameID)
		if err != nil {
			return err
		}

		if !g.HasPlayer(request.UserID) {
			return core.NewCommandError(
				http.StatusForbidden,
				fmt.Errorf("user %s is not a player of game %s", request.UserID, request.GameID),
			)
		}

		if g.Status == domain.GameStatusCompleted {
			return core.NewCommandError(
				http.StatusConflict,
				fmt.Errorf("game %s is already completed", g.ID),
			)
		}

		activeTurn, err := s.GetActiveTurnForUpdate(ctx, request.GameID)
		if err != nil {
			return err
		}

		if err := s.UpdateTurnStatus(ctx, activeTurn.ID, domain.TurnStatusFail, nil); err != nil {
			return err
		}

		winnerID := g.Opponent(request.UserID)
		return s.CompleteGame(ctx, g.ID, g.ResultFor(winnerID), domain.WinConditionForfeit)
	})

	var commandErr core.CommandError
	switch {
	case errors.As(err, &commandErr):
		return core.Unit{}, commandErr
	case errors.Is(err, sql.ErrNoRows):
		return core.Unit{}, core.NewCommandError(http.StatusNotFound, err, core.WithReason("game not found"))
	case err != nil:
		return core.Unit{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	return core.Unit{}, nil
}
