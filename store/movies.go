package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rambilabs/rambi-api/models"
)

// Movies is the key-value adapter over the generated movie table. Upserts
// are idempotent on id with last-write-wins semantics; there is no
// optimistic concurrency check.
type Movies struct {
	db *gorm.DB
}

func NewMovies(db *gorm.DB) *Movies {
	return &Movies{db: db}
}

// Upsert writes the movie under its id and returns the freshly read stored
// copy, which doubles as a read-after-write confirmation.
func (s *Movies) Upsert(movie models.GeneratedMovie) (*models.GeneratedMovie, error) {
	if movie.ID == "" {
		return nil, fmt.Errorf("movie id is required")
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&movie).Error; err != nil {
		return nil, fmt.Errorf("upsert movie %s: %w", movie.ID, err)
	}
	stored, err := s.FindByID(movie.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("movie %s missing after upsert", movie.ID)
	}
	return stored, nil
}

// FindByID returns nil without error when the movie does not exist.
func (s *Movies) FindByID(id string) (*models.GeneratedMovie, error) {
	var movie models.GeneratedMovie
	err := s.db.First(&movie, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}
	return &movie, nil
}

// FindAll fails soft: a backend error yields an empty list so the gallery
// renders an empty grid instead of crashing.
func (s *Movies) FindAll() []models.GeneratedMovie {
	var movies []models.GeneratedMovie
	if err := s.db.Order("created_at desc").Find(&movies).Error; err != nil {
		log.Printf("listing movies failed: %v", err)
		return []models.GeneratedMovie{}
	}
	return movies
}

// Delete reports false only on backend failure. Existence is the caller's
// concern, checked via FindByID beforehand.
func (s *Movies) Delete(id string) bool {
	if err := s.db.Delete(&models.GeneratedMovie{}, "id = ?", id).Error; err != nil {
		log.Printf("deleting movie %s failed: %v", id, err)
		return false
	}
	return true
}
