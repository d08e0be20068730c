package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type GetPlayerGamesQuery struct {
	UserID uuid.UUID
}

func (q GetPlayerGamesQuery) Validate() error {
	if q.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

func HandleGetPlayerGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := GetPlayerGamesQuery{UserID: core.Session(ctx).UserID}

	response, err := mediator.Send[GetPlayerGamesQuery, []domain.Game](ctx, query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetPlayerGamesQueryHandler struct {
	db *sql.DB
}

func NewGetPlayerGamesQueryHandler(db *sql.DB) *GetPlayerGamesQueryHandler {
	return &GetPlayerGamesQueryHandler{db}
}

func (h *GetPlayerGamesQueryHandler) Handle(
	ctx context.Context,
	request GetPlayerGamesQuery,
) ([]domain.Game, error) {
	const query = `
		SELECT
			*
		FROM
			game
		WHERE
			player_1_id = $1 OR player_2_id = $1
		ORDER BY
			updated_at DESC;`
	return tql.Query[domain.Game](ctx, h.db, query, request.UserID)
}
