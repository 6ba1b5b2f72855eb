package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rambilabs/rambi-api/models"
)

// PlaceholderPosterURL is shown whenever a real poster cannot be resolved.
const PlaceholderPosterURL = "https://placehold.co/150x220/red/white?text=Image+Not+Available"

const lookupTimeout = 30 * time.Second

// Client talks to a TMDB-compatible movie lookup endpoint, optionally
// fronted by an API gateway that checks a subscription key.
//
// Lookups never fail hard: a miss or transport error yields a degraded
// placeholder SourceMovie so the generation pipeline keeps going.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: lookupTimeout},
	}
}

type movieResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

type searchResponse struct {
	Results []movieResult `json:"results"`
}

// GetMovieByTitle resolves a movie by title search, returning the first
// match or a placeholder movie when nothing is found.
func (c *Client) GetMovieByTitle(ctx context.Context, title string) models.SourceMovie {
	endpoint := fmt.Sprintf("%s/3/search/movie?query=%s", c.endpoint, url.QueryEscape(title))

	var sr searchResponse
	if err := c.get(ctx, endpoint, &sr); err != nil {
		log.Printf("TMDB search for %q failed: %v", title, err)
		return PlaceholderMovie(title)
	}
	if len(sr.Results) == 0 {
		log.Printf("TMDB search for %q returned no results", title)
		return PlaceholderMovie(title)
	}
	return toSourceMovie(sr.Results[0])
}

// GetMovieByID resolves a movie by its TMDB id, returning a placeholder
// movie when the id is unknown.
func (c *Client) GetMovieByID(ctx context.Context, id string) models.SourceMovie {
	endpoint := fmt.Sprintf("%s/3/movie/%s", c.endpoint, url.PathEscape(id))

	var m movieResult
	if err := c.get(ctx, endpoint, &m); err != nil {
		log.Printf("TMDB lookup for id %s failed: %v", id, err)
		return PlaceholderMovie(id)
	}
	return toSourceMovie(m)
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toSourceMovie(m movieResult) models.SourceMovie {
	poster := PlaceholderPosterURL
	if m.PosterPath != "" {
		poster = "https://image.tmdb.org/t/p/original/" + m.PosterPath
	}
	return models.SourceMovie{
		ID:        strconv.FormatInt(m.ID, 10),
		Title:     m.Title,
		Plot:      m.Overview,
		PosterURL: poster,
	}
}

// PlaceholderMovie is the degraded lookup result: valid input for the
// pipeline, never an error.
func PlaceholderMovie(title string) models.SourceMovie {
	return models.SourceMovie{
		Title:     title,
		Plot:      fmt.Sprintf("Movie %q was not found in the movie database.", title),
		PosterURL: PlaceholderPosterURL,
	}
}
