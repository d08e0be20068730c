package domain

import "github.com/google/uuid"

// OutcomeKind enumerates the store-committed results of a guess submission.
type OutcomeKind string

const (
	// OutcomeNoOp - the guess named the active turn's own movie.
	OutcomeNoOp OutcomeKind = "NoOp"
	// OutcomeNotYourTurn - the guesser is not the current turn's owner.
	OutcomeNotYourTurn OutcomeKind = "NotYourTurn"
	// OutcomeMovieAlreadyUsed - the movie already appeared as a turn's movie.
	OutcomeMovieAlreadyUsed OutcomeKind = "MovieAlreadyUsed"
	// OutcomeRejected - the connection over-uses an actor.
	OutcomeRejected OutcomeKind = "Rejected"
	// OutcomeMiss - a failed guess that leaves the turn in progress.
	OutcomeMiss OutcomeKind = "Miss"
	// OutcomeAdvanced - a successful guess that opened a new turn.
	OutcomeAdvanced OutcomeKind = "Advanced"
	// OutcomeGameOver - the third failed guess completed the game.
	OutcomeGameOver OutcomeKind = "GameOver"
)

type Outcome struct {
	Kind             OutcomeKind `json:"kind"`
	OverusedActor    string      `json:"overusedActor,omitempty"`
	NextUserID       uuid.UUID   `json:"nextUserId,omitempty"`
	WinnerID         uuid.UUID   `json:"winnerId,omitempty"`
	GuessesRemaining int         `json:"guessesRemaining,omitempty"`
	CommonCast       CastMembers `json:"commonCast,omitempty"`
}

func NoOpOutcome() Outcome {
	return Outcome{Kind: OutcomeNoOp}
}

func NotYourTurnOutcome() Outcome {
	return Outcome{Kind: OutcomeNotYourTurn}
}

func MovieAlreadyUsedOutcome() Outcome {
	return Outcome{Kind: OutcomeMovieAlreadyUsed}
}

func RejectedOutcome(overusedActor string) Outcome {
	return Outcome{Kind: OutcomeRejected, OverusedActor: overusedActor}
}

func MissOutcome(guessesRemaining int) Outcome {
	return Outcome{Kind: OutcomeMiss, GuessesRemaining: guessesRemaining}
}

func AdvancedOutcome(nextUserID uuid.UUID, commonCast CastMembers) Outcome {
	return Outcome{Kind: OutcomeAdvanced, NextUserID: nextUserID, CommonCast: commonCast}
}

func GameOverOutcome(winnerID uuid.UUID) Outcome {
	return Outcome{Kind: OutcomeGameOver, WinnerID: winnerID}
}
