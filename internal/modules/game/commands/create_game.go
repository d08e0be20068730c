package commands

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"path"

	"github.com/modiphy/movie-chain-go/internal/modules/catalog"
	"github.com/modiphy/movie-chain-go/internal/modules/core"
	"github.com/modiphy/movie-chain-go/internal/modules/game"
	"github.com/modiphy/movie-chain-go/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type CreateGameCommand struct {
	CreatorID  uuid.UUID   `json:"-"`
	OpponentID uuid.UUID   `json:"opponentId"`
	Movie      *GuessMovie `json:"movie,omitempty"`
}

func (c CreateGameCommand) Validate() error {
	if c.CreatorID == uuid.Nil {
		return fmt.Errorf("invalid CreatorID - '%s'", c.CreatorID)
	}

	if c.OpponentID == uuid.Nil {
		return fmt.Errorf("invalid OpponentID - '%s'", c.OpponentID)
	}

	if c.CreatorID == c.OpponentID {
		return fmt.Errorf("creator and opponent must be different players")
	}

	if c.Movie != nil && c.Movie.ID < 1 {
		return fmt.Errorf("invalid Movie.ID - '%d'", c.Movie.ID)
	}

	return nil
}

type CreateGameResponse struct {
	GameID string `json:"gameId"`
}

func HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command, err := core.RequestBody[CreateGameCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.CreatorID = core.Session(ctx).UserID

	response, err := mediator.Send[CreateGameCommand, CreateGameResponse](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "games", response.GameID)
	core.WriteCreated(w, r, location)
}

type CreateGameCommandHandler struct {
	store   game.Store
	catalog Catalog
	rng     *rand.Rand
}

func NewCreateGameCommandHandler(store game.Store, catalog Catalog, rng *rand.Rand) *CreateGameCommandHandler {
	return &CreateGameCommandHandler{store: store, catalog: catalog, rng: rng}
}

// Handle creates a game and its first turn together. The first turn belongs
// to the opponent: the creator picked the starting movie, so the opponent
// makes the first connection.
func (h *CreateGameCommandHandler) Handle(
	ctx context.Context,
	request CreateGameCommand,
) (CreateGameResponse, error) {
	var movie domain.Movie
	if request.Movie != nil {
		movie = domain.Movie{ID: request.Movie.ID, Title: request.Movie.Title, Year: request.Movie.Year}
	} else {
		movie = domain.PickSeedMovie(h.rng)
	}

	if movie.Title == "" || movie.Year == 0 {
		details, err := h.catalog.GetMovieDetails(ctx, movie.ID)
		if err != nil {
			return CreateGameResponse{}, core.NewCommandError(http.StatusBadGateway, err)
		}
		movie = domain.Movie{ID: details.ID, Title: details.Title, Year: details.Year}
	}

	cast, err := h.catalog.GetMovieCredits(ctx, movie.ID)
	if err != nil {
		return CreateGameResponse{}, core.NewCommandError(http.StatusBadGateway, err)
	}

	g := domain.Game{
		ID:                uuid.NewString(),
		Player1ID:         request.CreatorID,
		Player2ID:         request.OpponentID,
		CurrentTurnUserID: request.OpponentID,
		Status:            domain.GameStatusPending,
	}

	firstTurn := domain.Turn{
		ID:         uuid.NewString(),
		GameID:     g.ID,
		UserID:     request.OpponentID,
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
		return CreateGameResponse{}, core.NewCommandError(http.StatusInternalServerError, err)
	}

	return CreateGameResponse{GameID: g.ID}, nil
}
