package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable covers every way the movie catalog can fail: transport
// errors, timeouts, non-2xx statuses, and payloads that do not match the
// expected shape. Callers treat all of them the same way - nothing was
// mutated, the guess is retryable.
var ErrUnavailable = errors.New("movie catalog unavailable")

const defaultSearchLimit = 5

type Movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type CastMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Config controls how the client reaches the upstream catalog API.
type Config struct {
	BaseURL     string
	APIToken    string
	HTTPClient  *http.Client
	SearchLimit int
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client resolves movies and cast lists against the TMDB API.
type Client struct {
	baseURL     string
	apiToken    string
	httpClient  httpDoer
	searchLimit int
}

func NewClient(cfg Config) *Client {
	httpClient := httpDoer(http.DefaultClient)
	if cfg.HTTPClient != nil {
		httpClient = cfg.HTTPClient
	}

	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:    cfg.APIToken,
		httpClient:  httpClient,
		searchLimit: searchLimit,
	}
}

type searchResponse struct {
	Results []apiMovie `json:"results"`
}

type apiMovie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type creditsResponse struct {
	Cast []apiCastMember `json:"cast"`
}

type apiCastMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchMovies resolves a free-text query to a ranked list of candidate
// movies, truncated to the configured limit.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	var payload searchResponse
	params := map[string]string{
		"query":         query,
		"include_adult": "false",
		"language":      "en-US",
		"page":          "1",
	}
	if err := c.get(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, c.searchLimit)
	for _, m := range payload.Results {
		movie, err := mapMovie(m)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
		if len(movies) == c.searchLimit {
			break
		}
	}

	return movies, nil
}

// GetMovieCredits returns the full cast list of a movie in catalog order.
func (c *Client) GetMovieCredits(ctx context.Context, movieID int64) ([]CastMember, error) {
	var payload creditsResponse
	endpoint := fmt.Sprintf("/movie/%d/credits", movieID)
	if err := c.get(ctx, endpoint, map[string]string{"language": "en-US"}, &payload); err != nil {
		return nil, err
	}

	cast := make([]CastMember, 0, len(payload.Cast))
	for _, m := range payload.Cast {
		if m.ID == 0 || m.Name == "" {
			return nil, fmt.Errorf("cast member missing id or name: %w", ErrUnavailable)
		}
		cast = append(cast, CastMember{ID: m.ID, Name: m.Name})
	}

	return cast, nil
}

func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (Movie, error) {
	var payload apiMovie
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	if err := c.get(ctx, endpoint, map[string]string{"language": "en-US"}, &payload); err != nil {
		return Movie{}, err
	}

	return mapMovie(payload)
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", err, ErrUnavailable)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf(
			"unexpected status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), ErrUnavailable,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", err, ErrUnavailable)
	}

	return nil
}

func mapMovie(m apiMovie) (Movie, error) {
	if m.ID == 0 || m.Title == "" {
		return Movie{}, fmt.Errorf("movie missing id or title: %w", ErrUnavailable)
	}

	return Movie{
		ID:    m.ID,
		Title: m.Title,
		Year:  releaseYear(m.ReleaseDate),
	}, nil
}

// releaseYear extracts the year from a catalog release date. A missing or
// unparsable date degrades to year 0 rather than failing the whole payload.
func releaseYear(releaseDate string) int {
	if t, err := time.Parse("2006-01-02", releaseDate); err == nil {
		return t.Year()
	}

	if len(releaseDate) >= 4 {
		if year, err := strconv.Atoi(releaseDate[:4]); err == nil {
			return year
		}
	}

	return 0
}
