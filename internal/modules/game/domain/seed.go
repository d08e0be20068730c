package domain

import "math/rand"

// seedMovies is a small curated list of well-known, heavily-cast movies used
// to open a game when the creator does not pick a starting movie themselves.
var seedMovies = []Movie{
	{ID: 105, Title: "Back to the Future", Year: 1985},
	{ID: 107, Title: "Snatch", Year: 2000},
	{ID: 680, Title: "Pulp Fiction", Year: 1994},
	{ID: 240, Title: "The Godfather Part II", Year: 1974},
	{ID: 769, Title: "GoodFellas", Year: 1990},
	{ID: 603, Title: "The Matrix", Year: 1999},
	{ID: 78, Title: "Blade Runner", Year: 1982},
	{ID: 115, Title: "The Big Lebowski", Year: 1998},
}

// PickSeedMovie selects a starting movie using the provided random source.
func PickSeedMovie(rng *rand.Rand) Movie {
	return seedMovies[rng.Intn(len(seedMovies))]
}
