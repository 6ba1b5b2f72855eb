package processing

import (
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/rambilabs/rambi-api/cache"
)

// Outbound model calls always carry a finite deadline: a hung completion
// must not hang the whole pipeline.
const (
	textGenerationTimeout  = 60 * time.Second
	imageGenerationTimeout = 180 * time.Second
)

// Service wraps the model client used by the describe, generate, validate
// and render steps. It is constructed once at process start and passed to
// handlers and workers; it holds no per-request state.
type Service struct {
	client openai.Client
	cache  *cache.Descriptions
}

// NewService builds a Service. descriptions may be nil, which disables the
// poster description cache.
func NewService(client openai.Client, descriptions *cache.Descriptions) *Service {
	return &Service{client: client, cache: descriptions}
}
