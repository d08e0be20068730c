package commands

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"testing"

	"github.com/modiphy/movie-chain-go/internal/modules/catalog"
	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Rematch_Opens_A_Fresh_Game_Between_The_Same_Players(t *testing.T) {
	// Arrange
	f := newSubmitGuessFixture()
	f.store.game.Status = domain.GameStatusCompleted

	expected := domain.PickSeedMovie(rand.New(rand.NewSource(3)))
	f.catalog.credits[expected.ID] = []catalog.CastMember{
		{ID: 21, Name: "Somebody Famous"},
	}

	handler := NewRematchCommandHandler(f.store, f.catalog, rand.New(rand.NewSource(3)))

	// Act
	response, err := handler.Handle(context.Background(), RematchCommand{
		GameID: "game-1",
		UserID: f.player2,
	})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, response.GameID)
	require.NotEqual(t, "game-1", response.GameID)

	require.Equal(t, response.GameID, f.store.game.ID)
	require.Equal(t, f.player1, f.store.game.Player1ID)
	require.Equal(t, f.player2, f.store.game.Player2ID)
	require.Equal(t, f.player1, f.store.game.CurrentTurnUserID)
	require.Equal(t, domain.GameStatusPending, f.store.game.Status)

	require.Len(t, f.store.turns, 2)
	firstTurn := f.store.turns[1]
	require.Equal(t, response.GameID, firstTurn.GameID)
	require.Equal(t, f.player1, firstTurn.UserID)
	require.Equal(t, expected.ID, firstTurn.MovieID)
	require.Equal(t, domain.Int64List{21}, firstTurn.CastIDs)
}

func Test_Rematch_By_Outsider_Is_Forbidden(t *testing.T) {
	// Arrange
	f := newSubmitGuessFixture()
	handler := NewRematchCommandHandler(f.store, f.catalog, rand.New(rand.NewSource(3)))

	// Act
	_, err := handler.Handle(context.Background(), RematchCommand{
		GameID: "game-1",
		UserID: uuid.New(),
	})

	// Assert
	require.Error(t, err)

	var commandErr core.CommandError
	require.True(t, errors.As(err, &commandErr))
	require.Equal(t, http.StatusForbidden, commandErr.StatusCode)
}
