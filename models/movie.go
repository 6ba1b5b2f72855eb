package models

import (
	"fmt"
	"math/rand"
	"time"
)

// GenreList mirrors the genre choices offered by the gallery UI. The index of
// a genre in this list is embedded in generated movie ids.
var GenreList = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History", "Horror",
	"Music", "Mystery", "Romance", "Science Fiction",
	"TV Movie", "Thriller", "War", "Western",
}

// GenreIndex returns the position of genre in GenreList, or -1 when the
// genre is not one of the known choices.
func GenreIndex(genre string) int {
	for i, g := range GenreList {
		if g == genre {
			return i
		}
	}
	return -1
}

// SourceMovie is an existing movie fetched from the movie database, used as
// generation input. It is never persisted on its own.
type SourceMovie struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Plot              string `json:"plot"`
	PosterURL         string `json:"poster_url"`
	PosterDescription string `json:"poster_description,omitempty"`
}

// GenerationRequest carries the two source movies and the target genre and
// language for one mashup generation.
type GenerationRequest struct {
	Movie1   SourceMovie `json:"movie1"`
	Movie2   SourceMovie `json:"movie2"`
	Genre    string      `json:"genre"`
	Language string      `json:"language"`
}

// Normalize applies request defaults.
func (r *GenerationRequest) Normalize() {
	if r.Language == "" {
		r.Language = "english"
	}
}

// GeneratedMovie is the AI-synthesized mashup movie record. PosterURL stays
// empty until the rendering step attaches an image, and Prompt keeps the
// exact text sent to the model for audit purposes.
type GeneratedMovie struct {
	ID                string            `gorm:"primaryKey;size:128" json:"id"`
	Title             string            `gorm:"size:255" json:"title"`
	Plot              string            `gorm:"type:text" json:"plot"`
	PosterDescription string            `gorm:"type:text" json:"poster_description"`
	PosterURL         string            `gorm:"type:text" json:"poster_url"`
	Prompt            string            `gorm:"type:text" json:"prompt,omitempty"`
	Payload           GenerationRequest `gorm:"serializer:json" json:"payload"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (GeneratedMovie) TableName() string {
	return "generated_movies"
}

// NeedsPoster reports whether the movie is eligible for poster rendering:
// nothing attached yet and a description to render from. A movie with no
// description can never be rendered and must not be re-queued.
func (m *GeneratedMovie) NeedsPoster() bool {
	return m.PosterURL == "" && m.PosterDescription != ""
}

// NewMovieID builds the gallery id from the genre index, both source movie
// ids and a random 5-digit suffix. The suffix reduces collision risk across
// concurrent generations, it does not eliminate it.
func NewMovieID(genre, movie1ID, movie2ID string) string {
	return fmt.Sprintf("%d_%s_%s_%d", GenreIndex(genre), movie1ID, movie2ID, 10000+rand.Intn(90000))
}
