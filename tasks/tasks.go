package tasks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ---
// QUEUE DEFINITIONS
// ---
// We define all queue and channel names as constants here.
const (
	// QueuePosterRender holds requests to render a poster image for a
	// generated movie that does not have one yet.
	QueuePosterRender = "q_poster_render"

	// QueuePosterValidate holds movie-updated events whose payload is a
	// serialized GeneratedMovie ready for poster validation.
	QueuePosterValidate = "q_poster_validate"

	// QueuePosterEvents holds blob-created events emitted by an external
	// poster renderer; the movie id is recovered from the event subject.
	QueuePosterEvents = "q_poster_events"

	// ChannelMovieCreated is the pub/sub channel announcing newly
	// persisted generated movies.
	ChannelMovieCreated = "movie_created"
)

// Event types carried in the envelope.
const (
	EventTypeBlobCreated  = "Storage.BlobCreated"
	EventTypeMovieUpdated = "rambi.movie.updated"
)

// ---
// TASK PAYLOADS
// ---
// These are the structs that will be JSON-marshalled and sent to Redis.

// RenderTaskPayload is the payload for QueuePosterRender
type RenderTaskPayload struct {
	MovieID string `json:"movie_id"`
}

// MovieCreatedMessage is published on ChannelMovieCreated
type MovieCreatedMessage struct {
	MovieID string `json:"movie_id"`
}

// Event is the envelope carried on the event queues. Data holds a
// JSON-encoded payload whose shape depends on Type: a GeneratedMovie for
// movie-updated events, a BlobData for blob-created events.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Subject string          `json:"subject"`
	Data    json.RawMessage `json:"data"`
}

// BlobData is the data payload of a blob-created event.
type BlobData struct {
	URL string `json:"url"`
}

// NewEvent wraps a payload in an envelope with a fresh event id.
func NewEvent(eventType, subject string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Subject: subject,
		Data:    data,
	}, nil
}

// ---
// HELPER FUNCTIONS
// ---

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BlobSubject builds the canonical event subject for a stored poster blob.
func BlobSubject(container, blob string) string {
	return fmt.Sprintf("/storage/default/containers/%s/blobs/%s", container, blob)
}

// ParseBlobSubject extracts the container and blob name from a subject of
// the form ".../containers/{container}/blobs/{blobName}".
func ParseBlobSubject(subject string) (container, blob string, err error) {
	parts := strings.Split(subject, "/")
	for i := 0; i+3 < len(parts); i++ {
		if parts[i] == "containers" && parts[i+2] == "blobs" {
			container = parts[i+1]
			blob = strings.Join(parts[i+3:], "/")
			if container != "" && blob != "" {
				return container, blob, nil
			}
		}
	}
	return "", "", fmt.Errorf("subject %q does not name a blob", subject)
}

// MovieIDFromBlob recovers the movie id from a blob name following the
// "{id}.png" convention; the extension is stripped, nested paths keep only
// the final element.
func MovieIDFromBlob(blob string) string {
	if i := strings.LastIndex(blob, "/"); i >= 0 {
		blob = blob[i+1:]
	}
	if i := strings.LastIndex(blob, "."); i > 0 {
		blob = blob[:i]
	}
	return blob
}
