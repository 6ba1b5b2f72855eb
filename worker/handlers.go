package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/rambilabs/rambi-api/tasks"
)

// HandlePosterRender processes tasks from QueuePosterRender: it renders a
// poster image for the movie, attaches the URL in place and chains the
// movie into poster validation.
func (p *Processor) HandlePosterRender(ctx context.Context, payload string) error {
	var task tasks.RenderTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	log.Printf("Rendering poster for movie %s", task.MovieID)
	movie, err := p.Movies.FindByID(task.MovieID)
	if err != nil {
		return err
	}
	if movie == nil {
		log.Printf("Movie %s no longer exists, skipping render", task.MovieID)
		return nil
	}
	if movie.PosterURL != "" {
		log.Printf("Movie %s already has a poster, skipping render", task.MovieID)
		return nil
	}
	if movie.PosterDescription == "" {
		log.Printf("Movie %s has no poster description, skipping render", task.MovieID)
		return nil
	}

	// RenderPoster degrades to a placeholder URL on failure, so the update
	// below always lands something displayable.
	movie.PosterURL = p.Gen.RenderPoster(ctx, movie.PosterDescription)
	updated, err := p.Movies.Upsert(*movie)
	if err != nil {
		return err
	}
	log.Printf("Attached poster to movie %s: %s", updated.ID, updated.PosterURL)

	return p.enqueueValidation(ctx, updated.ID, updated)
}

// HandlePosterEvent processes blob-created events from an external poster
// renderer. The movie id comes from the event subject blob name and the
// poster URL from the event data; the store record is updated in place and
// chained into validation, same path as the direct render.
func (p *Processor) HandlePosterEvent(ctx context.Context, payload string) error {
	var event tasks.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return err
	}

	_, blob, err := tasks.ParseBlobSubject(event.Subject)
	if err != nil {
		return fmt.Errorf("poster event %s: %w", event.ID, err)
	}
	movieID := tasks.MovieIDFromBlob(blob)

	var data tasks.BlobData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("poster event %s: %w", event.ID, err)
	}
	if data.URL == "" {
		return fmt.Errorf("poster event %s carries no blob url", event.ID)
	}

	movie, err := p.Movies.FindByID(movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		log.Printf("Poster event for unknown movie %s, skipping", movieID)
		return nil
	}

	movie.PosterURL = data.URL
	updated, err := p.Movies.Upsert(*movie)
	if err != nil {
		return err
	}
	log.Printf("Attached external poster to movie %s: %s", updated.ID, updated.PosterURL)

	return p.enqueueValidation(ctx, updated.ID, updated)
}

// HandleValidation processes movie-updated events from QueuePosterValidate.
// Validation may run more than once per movie; the upsert keeps it
// idempotent with last-write-wins.
func (p *Processor) HandleValidation(ctx context.Context, payload string) error {
	var event tasks.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return err
	}

	result, err := p.Gen.ValidateMovieJSON(ctx, event.Data)
	if err != nil {
		return fmt.Errorf("validation event %s: %w", event.ID, err)
	}

	stored, err := p.Validations.Upsert(result)
	if err != nil {
		return err
	}
	log.Printf("Stored validation for movie %s: overall score %d", stored.ID, stored.OverallScore)
	return nil
}

func (p *Processor) enqueueValidation(ctx context.Context, movieID string, movie interface{}) error {
	event, err := tasks.NewEvent(tasks.EventTypeMovieUpdated, tasks.BlobSubject("posters", movieID+".png"), movie)
	if err != nil {
		return err
	}
	if err := p.Enqueue(ctx, tasks.QueuePosterValidate, event); err != nil {
		return fmt.Errorf("queueing validation for movie %s: %w", movieID, err)
	}
	log.Printf("Queued movie %s for poster validation", movieID)
	return nil
}
