package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/rambilabs/rambi-api/models"
)

const validationInstructions = `You are a movie poster validation expert. Your job is to analyze movie posters and their descriptions to provide accurate validation scores.

For each validation request, you should include the following categories in your analysis:

1. Visual Quality (0-100): Evaluate the image quality, composition, resolution, and visual appeal
2. Content Accuracy (0-100): Check if the poster accurately represents the described content
3. Description Alignment (0-100): Verify how well the description matches what's actually shown in the image
4. Professional Standards (0-100): Assess if the poster meets professional movie poster standards
5. Genre Appropriateness (0-100): Determine if the visual style matches the movie genre

Use exactly those category names. For each category, provide a score from 0-100 and clear reasoning explaining the score.

Finally, provide an overall score (weighted average of all categories) and 3-5 actionable recommendations for improvement.

Be thorough, objective, and constructive in your analysis.`

// ValidateRequest carries everything known about the poster under review.
// Only MovieID and PosterDescription are required.
type ValidateRequest struct {
	MovieID           string `json:"movie_id"`
	PosterURL         string `json:"poster_url"`
	PosterDescription string `json:"poster_description"`
	MovieTitle        string `json:"movie_title"`
	MovieGenre        string `json:"movie_genre"`
	Language          string `json:"language"`
}

type validationResponse struct {
	ID              string                   `json:"id" jsonschema_description:"Identifier of the movie being validated"`
	OverallScore    int                      `json:"overall_score" jsonschema_description:"Weighted overall score from 0-100"`
	DetailedScores  []models.ValidationScore `json:"detailed_scores" jsonschema_description:"One entry per validation category"`
	Recommendations []string                 `json:"recommendations" jsonschema_description:"3-5 actionable recommendations for improvement"`
}

var validationSchema = GenerateSchema[validationResponse]()

// ValidatePoster scores a movie poster across the fixed category set in a
// single structured output call. The result id is always forced to the
// requested movie id; the model is not trusted to echo it back. Any model
// or parse failure is surfaced, never papered over with fabricated scores.
func (s *Service) ValidatePoster(ctx context.Context, req ValidateRequest) (models.ValidationResult, error) {
	if req.MovieID == "" {
		return models.ValidationResult{}, fmt.Errorf("validation requires a movie id")
	}
	if req.PosterDescription == "" {
		return models.ValidationResult{}, fmt.Errorf("validation requires a poster description")
	}
	if req.Language == "" {
		req.Language = "en"
	}

	prompt := fmt.Sprintf(`Please analyze this movie poster and provide a detailed validation assessment.

Movie Details:
- Movie ID: %s
- Title: %s
- Genre: %s
- Description: %s
- Original Poster URL: %s
Provide your response in a structured format and the language is %s.`,
		req.MovieID,
		orNotSpecified(req.MovieTitle),
		orNotSpecified(req.MovieGenre),
		req.PosterDescription,
		orNotSpecified(req.PosterURL),
		req.Language,
	)

	callCtx, cancel := context.WithTimeout(ctx, textGenerationTimeout)
	defer cancel()

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "poster_validation",
		Description: openai.String("Validation scores and recommendations for a movie poster"),
		Schema:      validationSchema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := s.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(validationInstructions),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4o,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("poster validation failed: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return models.ValidationResult{}, fmt.Errorf("poster validation failed: no response from model")
	}

	rawResponse := chatCompletion.Choices[0].Message.Content
	var out validationResponse
	if err := json.Unmarshal([]byte(rawResponse), &out); err != nil {
		return models.ValidationResult{}, fmt.Errorf("failed to parse validation response: %w\nRaw content: %s", err, rawResponse)
	}

	result := models.ValidationResult{
		ID:                  req.MovieID,
		OverallScore:        out.OverallScore,
		DetailedScores:      out.DetailedScores,
		Recommendations:     out.Recommendations,
		ValidationTimestamp: time.Now().UTC(),
	}
	if err := result.Check(); err != nil {
		return models.ValidationResult{}, fmt.Errorf("validation response rejected: %w", err)
	}
	log.Printf("validated poster for movie %s: overall score %d", result.ID, result.OverallScore)
	return result, nil
}

// ValidateMovieJSON validates from a serialized GeneratedMovie, the form
// received on the asynchronous event path.
func (s *Service) ValidateMovieJSON(ctx context.Context, data []byte) (models.ValidationResult, error) {
	var movie models.GeneratedMovie
	if err := json.Unmarshal(data, &movie); err != nil {
		return models.ValidationResult{}, fmt.Errorf("failed to parse movie payload: %w", err)
	}
	return s.ValidatePoster(ctx, ValidateRequest{
		MovieID:           movie.ID,
		PosterURL:         movie.PosterURL,
		PosterDescription: movie.PosterDescription,
		MovieTitle:        movie.Title,
		MovieGenre:        movie.Payload.Genre,
	})
}

func orNotSpecified(v string) string {
	if v == "" {
		return "Not specified"
	}
	return v
}
