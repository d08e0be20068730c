package notification

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/modiphy/movie-chain-go/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type GetLatestNotificationQuery struct {
	UserID uuid.UUID
}

func (q GetLatestNotificationQuery) Validate() error {
	if q.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

type GetLatestNotificationResponse struct {
	Notification *Notification `json:"notification"`
}

func HandleGetLatestNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := GetLatestNotificationQuery{UserID: core.Session(ctx).UserID}

	response, err := mediator.Send[GetLatestNotificationQuery, GetLatestNotificationResponse](ctx, query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetLatestNotificationQueryHandler struct {
	db *sql.DB
}

func NewGetLatestNotificationQueryHandler(db *sql.DB) *GetLatestNotificationQueryHandler {
	return &GetLatestNotificationQueryHandler{db}
}

func (h *GetLatestNotificationQueryHandler) Handle(
	ctx context.Context,
	request GetLatestNotificationQuery,
) (GetLatestNotificationResponse, error) {
	const query = `
		SELECT
			*
		FROM
			notification
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT 1;`
	latest, err := tql.QueryFirstOrDefault[Notification](ctx, h.db, Notification{}, query, request.UserID)
	if err != nil {
		return GetLatestNotificationResponse{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	if latest.ID == uuid.Nil {
		return GetLatestNotificationResponse{}, nil
	}

	return GetLatestNotificationResponse{Notification: &latest}, nil
}
