package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusPending   GameStatus = "Pending"
	GameStatusOngoing   GameStatus = "Ongoing"
	GameStatusCompleted GameStatus = "Completed"
)

type GameResult string

const (
	GameResultPlayer1Wins GameResult = "Player1Wins"
	GameResultPlayer2Wins GameResult = "Player2Wins"
	GameResultDraw        GameResult = "Draw"
	GameResultCanceled    GameResult = "Canceled"
)

type TurnStatus string

const (
	TurnStatusInProgress TurnStatus = "InProgress"
	TurnStatusSuccess    TurnStatus = "Success"
	TurnStatusFail       TurnStatus = "Fail"
)

type WinCondition string

const (
	WinConditionDraw             WinCondition = "Draw"
	WinConditionDestinationMovie WinCondition = "DestinationMovie"
	WinConditionForfeit          WinCondition = "Forfeit"
	WinConditionWrongGuess       WinCondition = "WrongGuess"
)

type CastMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMembers is stored as a jsonb column.
type CastMembers []CastMember

func (c CastMembers) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *CastMembers) Scan(src any) error {
	if src == nil {
		*c = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into CastMembers", src)
	}
}

// Int64List is stored as a jsonb column.
type Int64List []int64

func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]int64{})
	}
	return json.Marshal(l)
}

func (l *Int64List) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into Int64List", src)
	}
}

func (l Int64List) Contains(id int64) bool {
	for _, candidate := range l {
		if candidate == id {
			return true
		}
	}
	return false
}

type Movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type Game struct {
	ID                    string        `db:"id" json:"id"`
	Player1ID             uuid.UUID     `db:"player_1_id" json:"player1Id"`
	Player2ID             uuid.UUID     `db:"player_2_id" json:"player2Id"`
	CurrentTurnUserID     uuid.UUID     `db:"current_turn_user_id" json:"currentTurnUserId"`
	Status                GameStatus    `db:"status" json:"status"`
	Result                *GameResult   `db:"result" json:"result,omitempty"`
	WinCondition          *WinCondition `db:"win_condition" json:"winCondition,omitempty"`
	DestinationMovieID    *int64        `db:"destination_movie_id" json:"destinationMovieId,omitempty"`
	DestinationMovieTitle *string       `db:"destination_movie_title" json:"destinationMovieTitle,omitempty"`
	DestinationMovieYear  *int          `db:"destination_movie_year" json:"destinationMovieYear,omitempty"`
	CreatedAt             time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time     `db:"updated_at" json:"updatedAt"`
}

// Opponent returns the other player of the game.
func (g Game) Opponent(userID uuid.UUID) uuid.UUID {
	if userID == g.Player1ID {
		return g.Player2ID
	}
	return g.Player1ID
}

func (g Game) HasPlayer(userID uuid.UUID) bool {
	return userID == g.Player1ID || userID == g.Player2ID
}

// ResultFor maps a winning player to the game result recorded for them.
func (g Game) ResultFor(winnerID uuid.UUID) GameResult {
	if winnerID == g.Player1ID {
		return GameResultPlayer1Wins
	}
	return GameResultPlayer2Wins
}

type Turn struct {
	ID         string      `db:"id" json:"id"`
	GameID     string      `db:"game_id" json:"gameId"`
	UserID     uuid.UUID   `db:"user_id" json:"userId"`
	MovieID    int64       `db:"movie_id" json:"movieId"`
	MovieTitle string      `db:"movie_title" json:"movieTitle"`
	MovieYear  int         `db:"movie_year" json:"movieYear"`
	CastIDs    Int64List   `db:"cast_ids" json:"castIds"`
	Status     TurnStatus  `db:"status" json:"status"`
	CommonCast CastMembers `db:"common_cast" json:"commonCast,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
}

type Guess struct {
	ID         string    `db:"id" json:"id"`
	TurnID     string    `db:"turn_id" json:"turnId"`
	MovieID    int64     `db:"movie_id" json:"movieId"`
	MovieTitle string    `db:"movie_title" json:"movieTitle"`
	MovieYear  int       `db:"movie_year" json:"movieYear"`
	Result     bool      `db:"result" json:"result"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
