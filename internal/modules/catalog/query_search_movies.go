package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modiphy/movie-chain-go/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
)

type SearchMoviesQuery struct {
	Query string
}

func (q SearchMoviesQuery) Validate() error {
	if len(q.Query) < 2 {
		return fmt.Errorf("invalid Query - '%s'", q.Query)
	}

	return nil
}

func HandleSearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	response, err := mediator.Send[SearchMoviesQuery, []Movie](
		r.Context(),
		SearchMoviesQuery{Query: query},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type SearchMoviesQueryHandler struct {
	client *Client
}

func NewSearchMoviesQueryHandler(client *Client) *SearchMoviesQueryHandler {
	return &SearchMoviesQueryHandler{client}
}

func (h *SearchMoviesQueryHandler) Handle(
	ctx context.Context,
	request SearchMoviesQuery,
) ([]Movie, error) {
	movies, err := h.client.SearchMovies(ctx, request.Query)
	if err != nil {
		return nil, core.NewCommandError(http.StatusBadGateway, err)
	}

	return movies, nil
}
