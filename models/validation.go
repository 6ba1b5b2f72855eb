package models

import (
	"fmt"
	"time"
)

// ValidationCategories is the fixed set of dimensions the poster validation
// agent scores, in evaluation order.
var ValidationCategories = []string{
	"Visual Quality",
	"Content Accuracy",
	"Description Alignment",
	"Professional Standards",
	"Genre Appropriateness",
}

const (
	MinRecommendations = 3
	MaxRecommendations = 5
)

// ValidationScore is a single category rating.
type ValidationScore struct {
	Category  string `json:"category" jsonschema_description:"Validation category"`
	Score     int    `json:"score" jsonschema_description:"Score from 0-100"`
	Reasoning string `json:"reasoning" jsonschema_description:"Explanation of the score"`
}

// ValidationResult is the stored outcome of a poster validation, keyed 1:1
// with a GeneratedMovie by id. Re-validation overwrites it.
type ValidationResult struct {
	ID                  string            `gorm:"primaryKey;size:128" json:"id"`
	OverallScore        int               `json:"overall_score"`
	DetailedScores      []ValidationScore `gorm:"serializer:json" json:"detailed_scores"`
	Recommendations     []string          `gorm:"serializer:json" json:"recommendations"`
	ValidationTimestamp time.Time         `json:"validation_timestamp"`
}

func (ValidationResult) TableName() string {
	return "poster_validations"
}

// Check enforces the validation contract: scores within [0,100], exactly one
// entry per fixed category and 3-5 recommendations. Model output that does
// not meet it is rejected rather than repaired.
func (v *ValidationResult) Check() error {
	if v.ID == "" {
		return fmt.Errorf("validation result has no movie id")
	}
	if v.OverallScore < 0 || v.OverallScore > 100 {
		return fmt.Errorf("overall score %d out of range [0,100]", v.OverallScore)
	}
	if len(v.DetailedScores) != len(ValidationCategories) {
		return fmt.Errorf("expected %d detailed scores, got %d", len(ValidationCategories), len(v.DetailedScores))
	}
	seen := make(map[string]bool, len(ValidationCategories))
	for _, s := range v.DetailedScores {
		if !validCategory(s.Category) {
			return fmt.Errorf("unknown validation category %q", s.Category)
		}
		if seen[s.Category] {
			return fmt.Errorf("duplicate validation category %q", s.Category)
		}
		seen[s.Category] = true
		if s.Score < 0 || s.Score > 100 {
			return fmt.Errorf("score %d for %q out of range [0,100]", s.Score, s.Category)
		}
	}
	if len(v.Recommendations) < MinRecommendations || len(v.Recommendations) > MaxRecommendations {
		return fmt.Errorf("expected %d-%d recommendations, got %d", MinRecommendations, MaxRecommendations, len(v.Recommendations))
	}
	return nil
}

func validCategory(name string) bool {
	for _, c := range ValidationCategories {
		if c == name {
			return true
		}
	}
	return false
}
