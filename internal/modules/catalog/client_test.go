package catalog

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{
		BaseURL:    "https://catalog.test/3",
		APIToken:   "test-token",
		HTTPClient: &http.Client{Transport: rt},
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func Test_SearchMovies_Maps_And_Truncates_Results(t *testing.T) {
	// Arrange
	var capturedPath, capturedAuth, capturedQuery string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedAuth = req.Header.Get("Authorization")
		capturedQuery = req.URL.Query().Get("query")

		return jsonResponse(http.StatusOK, `{
			"results": [
				{"id": 105, "title": "Back to the Future", "release_date": "1985-07-03"},
				{"id": 165, "title": "Back to the Future Part II", "release_date": "1989-11-22"},
				{"id": 196, "title": "Back to the Future Part III", "release_date": "1990-05-25"},
				{"id": 1, "title": "Filler One", "release_date": "2001-01-01"},
				{"id": 2, "title": "Filler Two", "release_date": "2002-01-01"},
				{"id": 3, "title": "Filler Three", "release_date": "2003-01-01"}
			]
		}`), nil
	})

	client := newTestClient(rt)

	// Act
	movies, err := client.SearchMovies(context.Background(), "back to the future")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "/3/search/movie", capturedPath)
	require.Equal(t, "Bearer test-token", capturedAuth)
	require.Equal(t, "back to the future", capturedQuery)

	require.Len(t, movies, 5)
	require.Equal(t, Movie{ID: 105, Title: "Back to the Future", Year: 1985}, movies[0])
}

func Test_GetMovieCredits_Maps_Cast_In_Catalog_Order(t *testing.T) {
	// Arrange
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "/3/movie/105/credits", req.URL.Path)

		return jsonResponse(http.StatusOK, `{
			"cast": [
				{"id": 9, "name": "Michael J. Fox"},
				{"id": 3, "name": "Christopher Lloyd"}
			]
		}`), nil
	})

	client := newTestClient(rt)

	// Act
	cast, err := client.GetMovieCredits(context.Background(), 105)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []CastMember{
		{ID: 9, Name: "Michael J. Fox"},
		{ID: 3, Name: "Christopher Lloyd"},
	}, cast)
}

func Test_GetMovieCredits_Rejects_Malformed_Cast(t *testing.T) {
	// Arrange
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"cast": [{"id": 9}]}`), nil
	})

	client := newTestClient(rt)

	// Act
	_, err := client.GetMovieCredits(context.Background(), 105)

	// Assert
	require.ErrorIs(t, err, ErrUnavailable)
}

func Test_GetMovieDetails_Parses_Release_Year(t *testing.T) {
	// Arrange
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "/3/movie/107", req.URL.Path)

		return jsonResponse(http.StatusOK, `{
			"id": 107,
			"title": "Snatch",
			"release_date": "2000-09-01"
		}`), nil
	})

	client := newTestClient(rt)

	// Act
	movie, err := client.GetMovieDetails(context.Background(), 107)

	// Assert
	require.NoError(t, err)
	require.Equal(t, Movie{ID: 107, Title: "Snatch", Year: 2000}, movie)
}

func Test_Client_Treats_Upstream_Errors_As_Unavailable(t *testing.T) {
	// Arrange
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, `{"status_message": "down"}`), nil
	})

	client := newTestClient(rt)

	// Act
	_, searchErr := client.SearchMovies(context.Background(), "back")
	_, creditsErr := client.GetMovieCredits(context.Background(), 105)
	_, detailsErr := client.GetMovieDetails(context.Background(), 105)

	// Assert
	require.ErrorIs(t, searchErr, ErrUnavailable)
	require.ErrorIs(t, creditsErr, ErrUnavailable)
	require.ErrorIs(t, detailsErr, ErrUnavailable)
}

func Test_Client_Treats_Malformed_Payload_As_Unavailable(t *testing.T) {
	// Arrange
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results": "not-a-list"}`), nil
	})

	client := newTestClient(rt)

	// Act
	_, err := client.SearchMovies(context.Background(), "back")

	// Assert
	require.ErrorIs(t, err, ErrUnavailable)
}
