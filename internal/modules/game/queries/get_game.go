package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
)

type GetGameQuery struct {
	GameID string
}

func (q GetGameQuery) Validate() error {
	if q.GameID == "" {
		return fmt.Errorf("invalid GameID - '%s'", q.GameID)
	}

	return nil
}

// TurnView is a turn with its guesses attached, newest turn first - the
// shape the game page renders.
type TurnView struct {
	domain.Turn
	Guesses []domain.Guess `json:"guesses"`
}

type GameView struct {
	Game  domain.Game `json:"game"`
	Turns []TurnView  `json:"turns"`
}

func HandleGetGame(w http.ResponseWriter, r *http.Request) {
	query := GetGameQuery{GameID: chi.URLParam(r, "id")}

	response, err := mediator.Send[GetGameQuery, GameView](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetGameQueryHandler struct {
	db *sql.DB
}

func NewGetGameQueryHandler(db *sql.DB) *GetGameQueryHandler {
	return &GetGameQueryHandler{db}
}

func (h *GetGameQueryHandler) Handle(
	ctx context.Context,
	request GetGameQuery,
) (GameView, error) {
	const gameQuery = `
		SELECT
			*
		FROM
			game
		WHERE
			id = $1;`
	g, err := tql.QueryFirst[domain.Game](ctx, h.db, gameQuery, request.GameID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return GameView{}, core.NewCommandError(http.StatusNotFound, err, core.WithReason("game not found"))
	case err != nil:
		return GameView{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	const turnsQuery = `
		SELECT
			*
		FROM
			turn
		WHERE
			game_id = $1
		ORDER BY
			created_at DESC;`
	turns, err := tql.Query[domain.Turn](ctx, h.db, turnsQuery, request.GameID)
	if err != nil {
		return GameView{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	const guessesQuery = `
		SELECT
			guess.*
		FROM
			guess
		JOIN
			turn ON turn.id = guess.turn_id
		WHERE
			turn.game_id = $1
		ORDER BY
			guess.created_at ASC;`
	guesses, err := tql.Query[domain.Guess](ctx, h.db, guessesQuery, request.GameID)
	if err != nil {
		return GameView{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	guessesByTurn := make(map[string][]domain.Guess, len(turns))
	for _, guess := range guesses {
		guessesByTurn[guess.TurnID] = append(guessesByTurn[guess.TurnID], guess)
	}

	views := core.Map(turns, func(t domain.Turn) TurnView {
		return TurnView{Turn: t, Guesses: guessesByTurn[t.ID]}
	})

	return GameView{Game: g, Turns: views}, nil
}
