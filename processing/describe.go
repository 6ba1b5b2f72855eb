package processing

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go/v3"
)

const describeMaxTokens = 2000

// DescribePoster asks a vision model to describe the poster image at
// posterURL. The title is prompt context only. Results are read through the
// description cache when one is configured.
func (s *Service) DescribePoster(ctx context.Context, title, posterURL string) (string, error) {
	if s.cache != nil {
		if description, ok := s.cache.Get(ctx, title, posterURL); ok {
			log.Printf("description cache hit for %q", title)
			return description, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, textGenerationTimeout)
	defer cancel()

	chatCompletion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a helpful assistant."),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(fmt.Sprintf("This is the '%s' movie poster. Describe it:", title)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: posterURL,
				}),
			}),
		},
		Model:     openai.ChatModelGPT4o,
		MaxTokens: openai.Int(describeMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("describe poster for %q: %w", title, err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("describe poster for %q: no response from model", title)
	}

	description := chatCompletion.Choices[0].Message.Content
	if description == "" {
		return "", fmt.Errorf("describe poster for %q: empty response, finish reason %s",
			title, chatCompletion.Choices[0].FinishReason)
	}

	if s.cache != nil {
		s.cache.Set(ctx, title, posterURL, description)
	}
	return description, nil
}

// FallbackDescription is substituted when a poster cannot be described, so
// the synthesis step still has explanatory text to work with instead of a
// silent empty string.
func FallbackDescription(title string, err error) string {
	return fmt.Sprintf("Poster description unavailable for %q: %v", title, err)
}
