package validations

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rambilabs/rambi-api/processing"
	"github.com/rambilabs/rambi-api/store"
)

type Handler struct {
	Store *store.Validations
	Gen   *processing.Service
}

func NewHandler(validations *store.Validations, gen *processing.Service) *Handler {
	return &Handler{Store: validations, Gen: gen}
}

type ValidateRequest struct {
	MovieID           string `json:"movie_id" binding:"required"`
	PosterURL         string `json:"poster_url"`
	PosterDescription string `json:"poster_description" binding:"required"`
	MovieTitle        string `json:"movie_title"`
	MovieGenre        string `json:"movie_genre"`
	Language          string `json:"language"`
	Store             bool   `json:"store"`
}

// Validate runs poster validation synchronously and optionally persists the
// result keyed by movie id.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Gen.ValidatePoster(c.Request.Context(), processing.ValidateRequest{
		MovieID:           req.MovieID,
		PosterURL:         req.PosterURL,
		PosterDescription: req.PosterDescription,
		MovieTitle:        req.MovieTitle,
		MovieGenre:        req.MovieGenre,
		Language:          req.Language,
	})
	if err != nil {
		log.Printf("Poster validation for movie %s failed: %v", req.MovieID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Validation failed"})
		return
	}

	if req.Store {
		stored, err := h.Store.Upsert(result)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store validation"})
			return
		}
		c.JSON(http.StatusOK, stored)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListValidations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.FindAll())
}

func (h *Handler) GetValidation(c *gin.Context) {
	result, err := h.Store.FindByID(c.Param("movie_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Validation not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteValidation(c *gin.Context) {
	id := c.Param("movie_id")
	result, err := h.Store.FindByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Validation not found"})
		return
	}
	if !h.Store.Delete(id) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete validation"})
		return
	}
	c.Status(http.StatusNoContent)
}
