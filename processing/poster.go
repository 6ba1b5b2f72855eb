package processing

import (
	"context"
	"log"

	"github.com/openai/openai-go/v3"

	"github.com/rambilabs/rambi-api/tmdb"
)

// RenderPoster generates a poster image from the description and returns
// its URL. Image generation is best-effort: on failure the placeholder
// image is returned so the gallery always has something to show.
func (s *Service) RenderPoster(ctx context.Context, description string) string {
	ctx, cancel := context.WithTimeout(ctx, imageGenerationTimeout)
	defer cancel()

	image, err := s.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModelDallE3,
		Prompt: "Generate a movie poster based on this description: " + description,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1792,
	})
	if err != nil {
		log.Printf("poster generation failed: %v", err)
		return tmdb.PlaceholderPosterURL
	}
	if len(image.Data) == 0 || image.Data[0].URL == "" {
		log.Printf("poster generation returned no image")
		return tmdb.PlaceholderPosterURL
	}
	return image.Data[0].URL
}
