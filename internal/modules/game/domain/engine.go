package domain

// MaxGuessesPerTurn is the number of guesses a player gets against one turn.
// The last failing guess terminates the turn and loses the game.
const MaxGuessesPerTurn = 3

// Verdict is the raw judgment of a guess against the active turn, before the
// actor reuse cap has been applied and before anything is persisted.
type Verdict struct {
	Success    bool
	CommonCast CastMembers
}

// EvaluateGuess intersects the guessed movie's cast with the cast of the
// active turn's movie. The intersection keeps the guessed movie's cast order.
// Cast ids are catalog-unique, so no deduplication is needed.
func EvaluateGuess(turnCastIDs Int64List, guessedCast []CastMember) Verdict {
	ids := make(map[int64]struct{}, len(turnCastIDs))
	for _, id := range turnCastIDs {
		ids[id] = struct{}{}
	}

	var common CastMembers
	for _, member := range guessedCast {
		if _, ok := ids[member.ID]; ok {
			common = append(common, member)
		}
	}

	return Verdict{
		Success:    len(common) > 0,
		CommonCast: common,
	}
}
