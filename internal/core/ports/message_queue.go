package ports

import (
	"context"

	"github.com/tenerify/tenerify/internal/messaging/payloads"
)

// StructureJobPublisher enqueues article-restructure jobs for the worker.
type StructureJobPublisher interface {
	PublishStructureRequest(ctx context.Context, payload payloads.ArticleStructurePayload) error
}

// StructureJobConsumer delivers queued restructure jobs to a handler
// function. Handler errors cause the message to be requeued.
type StructureJobConsumer interface {
	StartConsumingStructureRequests(ctx context.Context, handler func(context.Context, payloads.ArticleStructurePayload) error) error
}
