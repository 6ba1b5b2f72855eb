package gallery

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/rambilabs/rambi-api/models"
	"github.com/rambilabs/rambi-api/store"
	"github.com/rambilabs/rambi-api/tasks"
)

type Handler struct {
	Movies      *store.Movies
	Validations *store.Validations
	Redis       *redis.Client
}

func NewHandler(movies *store.Movies, validations *store.Validations, rdb *redis.Client) *Handler {
	return &Handler{Movies: movies, Validations: validations, Redis: rdb}
}

// MovieWithValidation is the gallery read model: the stored movie plus its
// validation scores when a validation exists. A missing validation is not
// an error, just an absent field.
type MovieWithValidation struct {
	models.GeneratedMovie
	ValidationScores *models.ValidationResult `json:"validation_scores,omitempty"`
}

// AddMovie persists a generated movie. Callers may supply the id; one is
// assigned otherwise. Publishes movie_created so the scheduler can queue
// poster rendering.
func (h *Handler) AddMovie(c *gin.Context) {
	var movie models.GeneratedMovie
	if err := c.ShouldBindJSON(&movie); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if movie.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}

	stored, err := h.Movies.Upsert(movie)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save movie"})
		return
	}

	h.publishMovieCreated(c, stored.ID)
	c.JSON(http.StatusCreated, stored)
}

// ListMovies returns all stored movies with validation scores joined at
// read time, best-effort.
func (h *Handler) ListMovies(c *gin.Context) {
	movies := h.Movies.FindAll()
	out := make([]MovieWithValidation, 0, len(movies))
	for _, movie := range movies {
		entry := MovieWithValidation{GeneratedMovie: movie}
		validation, err := h.Validations.FindByID(movie.ID)
		if err != nil {
			log.Printf("Joining validation for movie %s failed: %v", movie.ID, err)
		} else {
			entry.ValidationScores = validation
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetMovie(c *gin.Context) {
	movie, err := h.Movies.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if movie == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}

	entry := MovieWithValidation{GeneratedMovie: *movie}
	validation, err := h.Validations.FindByID(movie.ID)
	if err != nil {
		log.Printf("Joining validation for movie %s failed: %v", movie.ID, err)
	} else {
		entry.ValidationScores = validation
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteMovie reports absence and backend failure separately: 404 when the
// movie never existed, 500 when the delete itself failed.
func (h *Handler) DeleteMovie(c *gin.Context) {
	id := c.Param("id")
	movie, err := h.Movies.FindByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if movie == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}
	if !h.Movies.Delete(id) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movie"})
		return
	}
	c.Status(http.StatusNoContent)
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
