package processing

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rambilabs/rambi-api/models"
)

func modelValidation(echoID string, overall int, recommendations []string) string {
	scores := make([]models.ValidationScore, 0, len(models.ValidationCategories))
	for _, c := range models.ValidationCategories {
		scores = append(scores, models.ValidationScore{Category: c, Score: overall, Reasoning: "looks fine"})
	}
	b, _ := json.Marshal(validationResponse{
		ID:              echoID,
		OverallScore:    overall,
		DetailedScores:  scores,
		Recommendations: recommendations,
	})
	return string(b)
}

func TestValidatePoster(t *testing.T) {
	reply := modelValidation("model-invented-id", 82, []string{"sharpen", "recrop", "fix title"})
	svc := newTestService(t, fakeModel(t, "unused", reply, nil))

	result, err := svc.ValidatePoster(context.Background(), ValidateRequest{
		MovieID:           "13_3170_744_12345",
		PosterDescription: "A deer silhouette beneath a jet contrail.",
		MovieTitle:        "Wings Over the Meadow",
		MovieGenre:        "Romance",
	})
	require.NoError(t, err)

	// The id the model echoes back is never trusted.
	assert.Equal(t, "13_3170_744_12345", result.ID)
	assert.Equal(t, 82, result.OverallScore)
	assert.Len(t, result.DetailedScores, len(models.ValidationCategories))
	assert.Len(t, result.Recommendations, 3)
	assert.False(t, result.ValidationTimestamp.IsZero())
}

func TestValidatePosterRequiredFields(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no model call expected for invalid input")
	})

	_, err := svc.ValidatePoster(context.Background(), ValidateRequest{PosterDescription: "d"})
	assert.Error(t, err, "movie id is required")

	_, err = svc.ValidatePoster(context.Background(), ValidateRequest{MovieID: "m1"})
	assert.Error(t, err, "poster description is required")
}

func TestValidatePosterRejectsOutOfContractResponse(t *testing.T) {
	// Six recommendations exceeds the contract; the result is rejected.
	reply := modelValidation("m1", 50, []string{"a", "b", "c", "d", "e", "f"})
	svc := newTestService(t, fakeModel(t, "unused", reply, nil))

	_, err := svc.ValidatePoster(context.Background(), ValidateRequest{
		MovieID:           "m1",
		PosterDescription: "d",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation response rejected")
}

func TestValidateMovieJSON(t *testing.T) {
	reply := modelValidation("ignored", 70, []string{"a", "b", "c"})
	svc := newTestService(t, fakeModel(t, "unused", reply, nil))

	movie := models.GeneratedMovie{
		ID:                "13_1_2_54321",
		Title:             "T",
		PosterDescription: "poster text",
		PosterURL:         "https://example.test/p.png",
	}
	data, err := json.Marshal(movie)
	require.NoError(t, err)

	result, err := svc.ValidateMovieJSON(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "13_1_2_54321", result.ID)
}

func TestValidateMovieJSONBadPayload(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no model call expected for a bad payload")
	})

	_, err := svc.ValidateMovieJSON(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
