package main

import (
	"context"
	"log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/rambilabs/rambi-api/cache"
	"github.com/rambilabs/rambi-api/internal/config"
	"github.com/rambilabs/rambi-api/internal/platform"
	"github.com/rambilabs/rambi-api/processing"
	"github.com/rambilabs/rambi-api/store"
	"github.com/rambilabs/rambi-api/tasks"
	"github.com/rambilabs/rambi-api/worker"
)

func main() {
	log.Println("Starting worker...")

	cfg := config.Load()
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()

	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	client := openai.NewClient(opts...)

	var descriptions *cache.Descriptions
	if cfg.UseCache {
		descriptions = cache.NewDescriptions(rdb, cfg.CacheTTL)
	}

	movies := store.NewMovies(db)
	validations := store.NewValidations(db)
	gen := processing.NewService(client, descriptions)

	processor := worker.NewProcessor(movies, validations, rdb, gen)

	processor.Register(tasks.QueuePosterRender, processor.HandlePosterRender)
	processor.Register(tasks.QueuePosterEvents, processor.HandlePosterEvent)
	processor.Register(tasks.QueuePosterValidate, processor.HandleValidation)

	ctx := context.Background()
	processor.Listen(ctx,
		tasks.QueuePosterRender,
		tasks.QueuePosterEvents,
		tasks.QueuePosterValidate,
	)
}
