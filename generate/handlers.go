package generate

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/rambilabs/rambi-api/models"
	"github.com/rambilabs/rambi-api/processing"
	"github.com/rambilabs/rambi-api/store"
	"github.com/rambilabs/rambi-api/tasks"
	"github.com/rambilabs/rambi-api/tmdb"
)

type Handler struct {
	TMDB   *tmdb.Client
	Gen    *processing.Service
	Movies *store.Movies
	Redis  *redis.Client
}

func NewHandler(tmdbClient *tmdb.Client, gen *processing.Service, movies *store.Movies, rdb *redis.Client) *Handler {
	return &Handler{TMDB: tmdbClient, Gen: gen, Movies: movies, Redis: rdb}
}

// GenerateRequest resolves each source movie from, in order of preference:
// an inline movie payload, a TMDB id, or a title search.
type GenerateRequest struct {
	ID          string              `json:"id"`
	Movie1      *models.SourceMovie `json:"movie1"`
	Movie2      *models.SourceMovie `json:"movie2"`
	Movie1ID    string              `json:"movie1_id"`
	Movie2ID    string              `json:"movie2_id"`
	Movie1Title string              `json:"movie1_title"`
	Movie2Title string              `json:"movie2_title"`
	Genre       string              `json:"genre" binding:"required"`
	Language    string              `json:"language"`
}

// GenerateMovie orchestrates the full pipeline: resolve both source movies,
// synthesize the mashup, persist it and announce it for poster rendering.
//
// Generation failures still answer with a consistent movie-shaped body (the
// synthetic error movie) so the UI never sees a bare 500 page.
func (h *Handler) GenerateMovie(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.resolvable(req.Movie1, req.Movie1ID, req.Movie1Title) ||
		!h.resolvable(req.Movie2, req.Movie2ID, req.Movie2Title) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "each movie needs an inline payload, an id or a title"})
		return
	}

	// The two lookups are independent network calls.
	var movie1, movie2 models.SourceMovie
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		movie1 = h.resolve(c, req.Movie1, req.Movie1ID, req.Movie1Title)
	}()
	go func() {
		defer wg.Done()
		movie2 = h.resolve(c, req.Movie2, req.Movie2ID, req.Movie2Title)
	}()
	wg.Wait()

	generated, err := h.Gen.GenerateMovie(c.Request.Context(), models.GenerationRequest{
		Movie1:   movie1,
		Movie2:   movie2,
		Genre:    req.Genre,
		Language: req.Language,
	})
	if err != nil {
		log.Printf("Movie generation failed: %v", err)
		c.JSON(http.StatusOK, errorMovie(err))
		return
	}
	if req.ID != "" {
		generated.ID = req.ID
	}

	stored, err := h.Movies.Upsert(generated)
	if err != nil {
		log.Printf("Saving generated movie failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generated movie"})
		return
	}

	h.publishMovieCreated(c, stored.ID)
	c.JSON(http.StatusCreated, stored)
}

// DescribePoster exposes the describer directly: GET .../:title?url=...
func (h *Handler) DescribePoster(c *gin.Context) {
	title := c.Param("title")
	posterURL := c.Query("url")
	if posterURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	description, err := h.Gen.DescribePoster(c.Request.Context(), title, posterURL)
	if err != nil {
		log.Printf("Describe poster for %q failed: %v", title, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Poster description unavailable"})
		return
	}
	c.String(http.StatusOK, description)
}

func (h *Handler) resolvable(inline *models.SourceMovie, id, title string) bool {
	return inline != nil || id != "" || title != ""
}

// resolve never fails: TMDB misses come back as placeholder movies, which
// are valid pipeline input.
func (h *Handler) resolve(c *gin.Context, inline *models.SourceMovie, id, title string) models.SourceMovie {
	switch {
	case inline != nil:
		return *inline
	case id != "":
		return h.TMDB.GetMovieByID(c.Request.Context(), id)
	default:
		return h.TMDB.GetMovieByTitle(c.Request.Context(), title)
	}
}

func errorMovie(err error) models.GeneratedMovie {
	return models.GeneratedMovie{
		Title:     "Generation Movie Error",
		Plot:      "Error in calling the movie generation service: " + err.Error(),
		PosterURL: "",
	}
}

func (h *Handler) publishMovieCreated(c *gin.Context, movieID string) {
	if h.Redis == nil {
		return
	}
	payload, err := tasks.Marshal(tasks.MovieCreatedMessage{MovieID: movieID})
	if err != nil {
		log.Printf("Error marshalling movie_created message: %v", err)
		return
	}
	if err := h.Redis.Publish(c.Request.Context(), tasks.ChannelMovieCreated, payload).Err(); err != nil {
		log.Printf("Error publishing to redis: %v", err)
	}
}
