package commands

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Forfeit_Completes_Game_In_Opponents_Favor(t *testing.T) {
	// Arrange
	f := newSubmitGuessFixture()
	handler := NewForfeitCommandHandler(f.store)

	// Act
	_, err := handler.Handle(context.Background(), ForfeitCommand{
		GameID: "game-1",
		UserID: f.player2,
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, domain.GameStatusCompleted, f.store.game.Status)
	require.NotNil(t, f.store.game.Result)
	require.Equal(t, domain.GameResultPlayer1Wins, *f.store.game.Result)
	require.NotNil(t, f.store.game.WinCondition)
	require.Equal(t, domain.WinConditionForfeit, *f.store.game.WinCondition)
	require.Equal(t, domain.TurnStatusFail, f.store.turnByID("turn-1").Status)
}

func Test_Forfeit_By_Outsider_Is_Forbidden(t *testing.T) {
	// Arrange
	f := newSubmitGuessFixture()
	handler := NewForfeitCommandHandler(f.store)

	// Act
	_, err := handler.Handle(context.Background(), ForfeitCommand{
		GameID: "game-1",
		UserID: uuid.New(),
	})

	// Assert
	require.Error(t, err)

	var commandErr core.CommandError
	require.True(t, errors.As(err, &commandErr))
	require.Equal(t, http.StatusForbidden, commandErr.StatusCode)
	require.Equal(t, domain.GameStatusPending, f.store.game.Status)
}

func Test_Forfeit_Of_Completed_Game_Is_A_Conflict(t *testing.T) {
	// Arrange
	f := newSubmitGuessFixture()
	f.store.game.Status = domain.GameStatusCompleted
	handler := NewForfeitCommandHandler(f.store)

	// Act
	_, err := handler.Handle(context.Background(), ForfeitCommand{
		GameID: "game-1",
		UserID: f.player2,
	})

	// Assert
	require.Error(t, err)

	var commandErr core.CommandError
	require.True(t, errors.As(err, &commandErr))
	require.Equal(t, http.StatusConflict, commandErr.StatusCode)
}
