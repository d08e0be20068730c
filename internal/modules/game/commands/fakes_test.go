package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modiphy/movie-chain-go/internal/modules/catalog"
	"github.com/modiphy/movie-chain-go/internal/modules/game"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/google/uuid"
)

type fakeStore struct {
	game          domain.Game
	turns         []domain.Turn
	guesses       []domain.Guess
	notifications []string
}

var _ game.Store = (*fakeStore)(nil)

func (f *fakeStore) InTx(ctx context.Context, fn func(ctx context.Context, s game.Store) error) error {
	return fn(ctx, f)
}

func (f *fakeStore) GetGame(_ context.Context, gameID string) (domain.Game, error) {
	if f.game.ID != gameID {
		return domain.Game{}, sql.ErrNoRows
	}
	return f.game, nil
}

func (f *fakeStore) GetActiveTurn(_ context.Context, gameID string) (domain.Turn, error) {
	for i := len(f.turns) - 1; i >= 0; i-- {
		if f.turns[i].GameID == gameID && f.turns[i].Status == domain.TurnStatusInProgress {
			return f.turns[i], nil
		}
	}
	return domain.Turn{}, sql.ErrNoRows
}

func (f *fakeStore) GetActiveTurnForUpdate(ctx context.Context, gameID string) (domain.Turn, error) {
	return f.GetActiveTurn(ctx, gameID)
}

func (f *fakeStore) ListTurnMovieIDs(_ context.Context, gameID string) ([]int64, error) {
	var ids []int64
	for _, turn := range f.turns {
		if turn.GameID == gameID {
			ids = append(ids, turn.MovieID)
		}
	}
	return ids, nil
}

func (f *fakeStore) ListSuccessTurnCasts(_ context.Context, gameID string) ([]domain.CastMembers, error) {
	var casts []domain.CastMembers
	for _, turn := range f.turns {
		if turn.GameID == gameID && turn.Status == domain.TurnStatusSuccess {
			casts = append(casts, turn.CommonCast)
		}
	}
	return casts, nil
}

func (f *fakeStore) CountGuesses(_ context.Context, turnID string) (int, error) {
	count := 0
	for _, guess := range f.guesses {
		if guess.TurnID == turnID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateGame(_ context.Context, g domain.Game) error {
	f.game = g
	return nil
}

func (f *fakeStore) CreateTurn(_ context.Context, turn domain.Turn) error {
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeStore) CreateGuess(_ context.Context, guess domain.Guess) error {
	f.guesses = append(f.guesses, guess)
	return nil
}

func (f *fakeStore) UpdateTurnStatus(
	_ context.Context,
	turnID string,
	status domain.TurnStatus,
	commonCast domain.CastMembers,
) error {
	for i := range f.turns {
		if f.turns[i].ID == turnID {
			f.turns[i].Status = status
			f.turns[i].CommonCast = commonCast
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStore) AdvanceGame(_ context.Context, gameID string, nextUserID uuid.UUID) error {
	if f.game.ID != gameID {
		return sql.ErrNoRows
	}
	f.game.CurrentTurnUserID = nextUserID
	f.game.Status = domain.GameStatusOngoing
	return nil
}

func (f *fakeStore) CompleteGame(
	_ context.Context,
	gameID string,
	result domain.GameResult,
	winCondition domain.WinCondition,
) error {
	if f.game.ID != gameID {
		return sql.ErrNoRows
	}
	f.game.Status = domain.GameStatusCompleted
	f.game.Result = &result
	f.game.WinCondition = &winCondition
	return nil
}

func (f *fakeStore) CreateNotification(_ context.Context, _ uuid.UUID, message string) error {
	f.notifications = append(f.notifications, message)
	return nil
}

func (f *fakeStore) turnByID(turnID string) domain.Turn {
	for _, turn := range f.turns {
		if turn.ID == turnID {
			return turn
		}
	}
	return domain.Turn{}
}

type fakeCatalog struct {
	credits map[int64][]catalog.CastMember
	details map[int64]catalog.Movie
	err     error

	creditsCalls int
	detailsCalls int
}

var _ Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) GetMovieCredits(_ context.Context, movieID int64) ([]catalog.CastMember, error) {
	f.creditsCalls++
	if f.err != nil {
		return nil, f.err
	}
	cast, ok := f.credits[movieID]
	if !ok {
		return nil, fmt.Errorf("no credits for movie %d: %w", movieID, catalog.ErrUnavailable)
	}
	return cast, nil
}

func (f *fakeCatalog) GetMovieDetails(_ context.Context, movieID int64) (catalog.Movie, error) {
	f.detailsCalls++
	if f.err != nil {
		return catalog.Movie{}, f.err
	}
	movie, ok := f.details[movieID]
	if !ok {
		return catalog.Movie{}, fmt.Errorf("no details for movie %d: %w", movieID, catalog.ErrUnavailable)
	}
	return movie, nil
}
