package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/openai/openai-go/v3"

	"github.com/rambilabs/rambi-api/models"
)

// GeneratedMovieResponse is the structured output shape for movie synthesis.
type GeneratedMovieResponse struct {
	Title             string `json:"title" jsonschema_description:"A catchy, humorous title blending both source movies and fitting the target genre"`
	Plot              string `json:"plot" jsonschema_description:"A 4-6 sentence plot synopsis combining themes, characters or plot points from both source movies"`
	PosterDescription string `json:"poster_description" jsonschema_description:"A description of the new movie poster that never mentions either source movie title"`
}

var generatedMovieSchema = GenerateSchema[GeneratedMovieResponse]()

const synthesisInstructions = `Two movie titles and plots will be provided, along with a target genre.
Using the titles, plots and genre as inspiration, generate the following:
* Step 1: Generate a new movie title that combines elements of the provided titles and fits the target genre. The title should be catchy and humorous.
* Step 2: Generate a 4-6 sentence movie plot synopsis for the new title, incorporating themes, characters, or plot points from the provided movies. Adapt them to fit the target genre.
* Step 3: Based on the generated movie plot and the key elements of the 2 movie posters, generate the movie poster description without using the movie's titles.
* Step 4: Ensure the new movie title and plot are original and do not contain any violent or inappropriate content.`

const synthesisGuardrails = `Use the details above to generate the new movie title and plot.
Use the description of the two posters to generate the new poster description without any title.
Take care of not generating any violence.
Take care of not generating any copyrighted content.
Remove all mentions about copyrighted content and replace them with generic words.
Write the title, plot and poster description in the requested response language.`

// GenerateMovie synthesizes a new mashup movie from the two source movies in
// the request. Missing poster descriptions are filled lazily (both describe
// calls run concurrently); the synthesis itself is a single structured
// output call whose result is parsed, never repaired.
//
// Movie1 is always presented first in the prompt; blending is not
// commutative.
func (s *Service) GenerateMovie(ctx context.Context, req models.GenerationRequest) (models.GeneratedMovie, error) {
	req.Normalize()
	log.Printf("generating %s movie from %q and %q", req.Genre, req.Movie1.Title, req.Movie2.Title)

	s.ensureDescriptions(ctx, &req.Movie1, &req.Movie2)

	prompt, err := RenderPrompt(MoviePromptTemplate, map[string]string{
		"movie1_title":       req.Movie1.Title,
		"movie1_plot":        req.Movie1.Plot,
		"movie1_description": req.Movie1.PosterDescription,
		"movie2_title":       req.Movie2.Title,
		"movie2_plot":        req.Movie2.Plot,
		"movie2_description": req.Movie2.PosterDescription,
		"genre":              req.Genre,
		"language":           req.Language,
	})
	if err != nil {
		return models.GeneratedMovie{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, textGenerationTimeout)
	defer cancel()

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "generated_movie",
		Description: openai.String("A new movie blending two existing movies"),
		Schema:      generatedMovieSchema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := s.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a bot expert with a huge knowledge about movies and the cinema."),
			openai.SystemMessage(synthesisInstructions),
			openai.UserMessage(prompt),
			openai.SystemMessage(synthesisGuardrails),
		},
		Model: openai.ChatModelGPT4o,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return models.GeneratedMovie{}, fmt.Errorf("movie generation failed: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return models.GeneratedMovie{}, fmt.Errorf("movie generation failed: no response from model")
	}

	rawResponse := chatCompletion.Choices[0].Message.Content
	var out GeneratedMovieResponse
	if err := json.Unmarshal([]byte(rawResponse), &out); err != nil {
		return models.GeneratedMovie{}, fmt.Errorf("failed to parse generated movie: %w\nRaw content: %s", err, rawResponse)
	}
	if out.Title == "" || out.Plot == "" {
		return models.GeneratedMovie{}, fmt.Errorf("model returned an incomplete movie: %s", rawResponse)
	}

	movie := models.GeneratedMovie{
		ID:                models.NewMovieID(req.Genre, req.Movie1.ID, req.Movie2.ID),
		Title:             out.Title,
		Plot:              out.Plot,
		PosterDescription: out.PosterDescription,
		PosterURL:         "",
		Prompt:            prompt,
		Payload:           req,
	}
	log.Printf("generated movie %s: %q", movie.ID, movie.Title)
	return movie, nil
}

// ensureDescriptions lazily fills missing poster descriptions. The two
// describe calls are independent and run concurrently; a failed describe
// degrades to a tagged fallback instead of failing the generation.
func (s *Service) ensureDescriptions(ctx context.Context, movies ...*models.SourceMovie) {
	var wg sync.WaitGroup
	for _, movie := range movies {
		if movie.PosterDescription != "" {
			continue
		}
		wg.Add(1)
		go func(m *models.SourceMovie) {
			defer wg.Done()
			description, err := s.DescribePoster(ctx, m.Title, m.PosterURL)
			if err != nil {
				log.Printf("describe poster for %q failed: %v", m.Title, err)
				m.PosterDescription = FallbackDescription(m.Title, err)
				return
			}
			m.PosterDescription = description
		}(movie)
	}
	wg.Wait()
}
