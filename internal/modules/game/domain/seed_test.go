package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_PickSeedMovie_Is_Deterministic_For_A_Seeded_Source(t *testing.T) {
	// Arrange
	first := rand.New(rand.NewSource(42))
	second := rand.New(rand.NewSource(42))

	// Act
	movieA := PickSeedMovie(first)
	movieB := PickSeedMovie(second)

	// Assert
	require.Equal(t, movieA, movieB)
}

func Test_PickSeedMovie_Returns_A_Complete_Movie(t *testing.T) {
	// Arrange
	rng := rand.New(rand.NewSource(1))

	// Act + Assert - every pick is fully populated.
	for i := 0; i < 50; i++ {
		movie := PickSeedMovie(rng)
		require.NotZero(t, movie.ID)
		require.NotEmpty(t, movie.Title)
		require.NotZero(t, movie.Year)
	}
}
