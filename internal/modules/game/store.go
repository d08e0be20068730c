package game

import (
	"context"
	"database/sql"

	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

// Store is the persistence surface the game handlers run against. The SQL
// implementation is SQLStore; tests substitute an in-memory fake.
type Store interface {
	// InTx runs fn against a store bound to a single database transaction.
	// Everything fn writes commits or rolls back as one unit.
	InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error

	GetGame(ctx context.Context, gameID string) (domain.Game, error)
	GetActiveTurn(ctx context.Context, gameID string) (domain.Turn, error)
	// GetActiveTurnForUpdate locks the InProgress turn row for the duration
	// of the surrounding transaction, serializing concurrent guesses against
	// the same turn.
	GetActiveTurnForUpdate(ctx context.Context, gameID string) (domain.Turn, error)
	ListTurnMovieIDs(ctx context.Context, gameID string) ([]int64, error)
	ListSuccessTurnCasts(ctx context.Context, gameID string) ([]domain.CastMembers, error)
	CountGuesses(ctx context.Context, turnID string) (int, error)

	CreateGame(ctx context.Context, game domain.Game) error
	CreateTurn(ctx context.Context, turn domain.Turn) error
	CreateGuess(ctx context.Context, guess domain.Guess) error
	UpdateTurnStatus(ctx context.Context, turnID string, status domain.TurnStatus, commonCast domain.CastMembers) error
	AdvanceGame(ctx context.Context, gameID string, nextUserID uuid.UUID) error
	CompleteGame(ctx context.Context, gameID string, result domain.GameResult, winCondition domain.WinCondition) error
	CreateNotification(ctx context.Context, userID uuid.UUID, message string) error
}

type querier interface {
	tql.Querier
	tql.Executor
}

type SQLStore struct {
	db *sql.DB
	q  querier
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, q: db}
}

func (s *SQLStore) InTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	return core.Tx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &SQLStore{db: s.db, q: tx})
	})
}

func (s *SQLStore) GetGame(ctx context.Context, gameID string) (domain.Game, error) {
	const query = `
		SELECT
			*
		FROM
			game
		WHERE
			id = $1;`
	return tql.QueryFirst[domain.Game](ctx, s.q, query, gameID)
}

func (s *SQLStore) GetActiveTurn(ctx context.Context, gameID string) (domain.Turn, error) {
	const query = `
		SELECT
			*
		FROM
			turn
		WHERE
			game_id = $1 AND status = 'InProgress'
		ORDER BY
			created_at DESC
		LIMIT 1;`
	return tql.QueryFirst[domain.Turn](ctx, s.q, query, gameID)
}

func (s *SQLStore) GetActiveTurnForUpdate(ctx context.Context, gameID string) (domain.Turn, error) {
	const query = `
		SELECT
			*
		FROM
			turn
		WHERE
			game_id = $1 AND status = 'InProgress'
		ORDER BY
			created_at DESC
		LIMIT 1
		FOR UPDATE;`
	return tql.QueryFirst[domain.Turn](ctx, s.q, query, gameID)
}

type turnMovieRow struct {
	MovieID int64 `db:"movie_id"`
}

func (s *SQLStore) ListTurnMovieIDs(ctx context.Context, gameID string) ([]int64, error) {
	const query = `
		SELECT
			movie_id
		FROM
			turn
		WHERE
			game_id = $1;`
	rows, err := tql.Query[turnMovieRow](ctx, s.q, query, gameID)
	if err != nil {
		return nil, err
	}

	return core.Map(rows, func(r turnMovieRow) int64 { return r.MovieID }), nil
}

type turnCastRow struct {
	CommonCast domain.CastMembers `db:"common_cast"`
}

func (s *SQLStore) ListSuccessTurnCasts(ctx context.Context, gameID string) ([]domain.CastMembers, error) {
	const query = `
		SELECT
			common_cast
		FROM
			turn
		WHERE
			game_id = $1 AND status = 'Success';`
	rows, err := tql.Query[turnCastRow](ctx, s.q, query, gameID)
	if err != nil {
		return nil, err
	}

	return core.Map(rows, func(r turnCastRow) domain.CastMembers { return r.CommonCast }), nil
}

type countRow struct {
	Count int `db:"count"`
}

func (s *SQLStore) CountGuesses(ctx context.Context, turnID string) (int, error) {
	const query = `
		SELECT
			COUNT(*) AS count
		FROM
			guess
		WHERE
			turn_id = $1;`
	row, err := tql.QueryFirst[countRow](ctx, s.q, query, turnID)
	if err != nil {
		return 0, err
	}

	return row.Count, nil
}

func (s *SQLStore) CreateGame(ctx context.Context, game domain.Game) error {
	const stmt = `
		INSERT INTO
			game (id, player_1_id, player_2_id, current_turn_user_id, status)
		VALUES
			(:id, :player_1_id, :player_2_id, :current_turn_user_id, :status);`
	_, err := tql.Exec(ctx, s.q, stmt, game)
	return err
}

func (s *SQLStore) CreateTurn(ctx context.Context, turn domain.Turn) error {
	const stmt = `
		INSERT INTO
			turn (id, game_id, user_id, movie_id, movie_title, movie_year, cast_ids, status)
		VALUES
			(:id, :game_id, :user_id, :movie_id, :movie_title, :movie_year, :cast_ids, :status);`
	_, err := tql.Exec(ctx, s.q, stmt, turn)
	return err
}

func (s *SQLStore) CreateGuess(ctx context.Context, guess domain.Guess) error {
	const stmt = `
		INSERT INTO
			guess (id, turn_id, movie_id, movie_title, movie_year, result)
		VALUES
			(:id, :turn_id, :movie_id, :movie_title, :movie_year, :result);`
	_, err := tql.Exec(ctx, s.q, stmt, guess)
	return err
}

func (s *SQLStore) UpdateTurnStatus(
	ctx context.Context,
	turnID string,
	status domain.TurnStatus,
	commonCast domain.CastMembers,
) error {
	const stmt = `
		UPDATE
			turn
		SET
			status = $2,
			common_cast = $3
		WHERE
			id = $1;`
	_, err := tql.Exec(ctx, s.q, stmt, turnID, string(status), commonCast)
	return err
}

func (s *SQLStore) AdvanceGame(ctx context.Context, gameID string, nextUserID uuid.UUID) error {
	const stmt = `
		UPDATE
			game
		SET
			current_turn_user_id = $2,
			status = 'Ongoing',
			updated_at = now()
		WHERE
			id = $1;`
	_, err := tql.Exec(ctx, s.q, stmt, gameID, nextUserID)
	return err
}

func (s *SQLStore) CompleteGame(
	ctx context.Context,
	gameID string,
	result domain.GameResult,
	winCondition domain.WinCondition,
) error {
	const stmt = `
		UPDATE
			game
		SET
			status = 'Completed',
			result = $2,
			win_condition = $3,
			updated_at = now()
		WHERE
			id = $1;`
	_, err := tql.Exec(ctx, s.q, stmt, gameID, string(result), string(winCondition))
	return err
}

func (s *SQLStore) CreateNotification(ctx context.Context, userID uuid.UUID, message string) error {
	const stmt = `
		INSERT INTO
			notification (id, user_id, message)
		VALUES
			($1, $2, $3);`
	_, err := tql.Exec(ctx, s.q, stmt, uuid.NewString(), userID, message)
	return err
}
