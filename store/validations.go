package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rambilabs/rambi-api/models"
)

// Validations stores poster validation results keyed by movie id. Same
// contract as Movies: idempotent upsert, nil on absent, fail-soft listing.
type Validations struct {
	db *gorm.DB
}

func NewValidations(db *gorm.DB) *Validations {
	return &Validations{db: db}
}

func (s *Validations) Upsert(result models.ValidationResult) (*models.ValidationResult, error) {
	if result.ID == "" {
		return nil, fmt.Errorf("validation id is required")
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&result).Error; err != nil {
		return nil, fmt.Errorf("upsert validation %s: %w", result.ID, err)
	}
	stored, err := s.FindByID(result.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("validation %s missing after upsert", result.ID)
	}
	return stored, nil
}

func (s *Validations) FindByID(id string) (*models.ValidationResult, error) {
	var result models.ValidationResult
	err := s.db.First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find validation %s: %w", id, err)
	}
	return &result, nil
}

func (s *Validations) FindAll() []models.ValidationResult {
	var results []models.ValidationResult
	if err := s.db.Order("validation_timestamp desc").Find(&results).Error; err != nil {
		log.Printf("listing validations failed: %v", err)
		return []models.ValidationResult{}
	}
	return results
}

func (s *Validations) Delete(id string) bool {
	if err := s.db.Delete(&models.ValidationResult{}, "id = ?", id).Error; err != nil {
		log.Printf("deleting validation %s failed: %v", id, err)
		return false
	}
	return true
}
