package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"

	"github.com/rambilabs/rambi-api/internal/platform"
	"github.com/rambilabs/rambi-api/store"
	"github.com/rambilabs/rambi-api/tasks"
)

func main() {
	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	movies := store.NewMovies(db)

	// Create a new cron scheduler
	c := cron.New()

	// Sweep for movies that never got a poster. The render handler skips
	// movies that already have one, so re-enqueueing is harmless.
	_, err := c.AddFunc("@every 2m", func() {
		sweepPosterless(ctx, movies, rdb)
	})
	if err != nil {
		log.Fatalf("Error scheduling poster sweep: %v", err)
	}

	c.Start()
	defer c.Stop()

	// Start a goroutine to listen for newly created movies
	go listenForNewMovies(ctx, rdb)

	log.Println("Scheduler started, waiting for messages...")
	// Keep the main thread alive
	select {}
}

// listenForNewMovies subscribes to `movie_created` and queues a poster
// render for each announced movie. This uses Pub/Sub, so you should only
// run one instance of this service to avoid duplicate render tasks.
func listenForNewMovies(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.Subscribe(ctx, tasks.ChannelMovieCreated)
	defer pubsub.Close()
	ch := pubsub.Channel()

	log.Println("Scheduler listening for new movies...")

	for msg := range ch {
		var message tasks.MovieCreatedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
			log.Printf("Error unmarshalling %s message: %v", tasks.ChannelMovieCreated, err)
			continue
		}

		log.Printf("Received new movie %s, queuing poster render", message.MovieID)
		enqueueRender(ctx, rdb, message.MovieID)
	}
}

// sweepPosterless finds renderable movies without a poster and re-queues
// them for rendering. It catches movies whose created message was lost.
// Movies with no poster description are left alone, they would be skipped
// by the render handler on every pass.
func sweepPosterless(ctx context.Context, movies *store.Movies, rdb *redis.Client) {
	all := movies.FindAll()

	queued := 0
	for _, movie := range all {
		if !movie.NeedsPoster() {
			continue
		}
		enqueueRender(ctx, rdb, movie.ID)
		queued++
	}
	if queued > 0 {
		log.Printf("Poster sweep queued %d movies", queued)
	}
}

func enqueueRender(ctx context.Context, rdb *redis.Client, movieID string) {
	payload, err := tasks.Marshal(tasks.RenderTaskPayload{MovieID: movieID})
	if err != nil {
		log.Printf("Error marshalling render task for %s: %v", movieID, err)
		return
	}
	if err := rdb.LPush(ctx, tasks.QueuePosterRender, payload).Err(); err != nil {
		log.Printf("Error pushing render task to queue %s: %v", tasks.QueuePosterRender, err)
	}
}
