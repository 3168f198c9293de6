package app

import (
	"context"
	"fmt"

	"github.com/tenerify/tenerify/internal/messaging/payloads"
)

// runWorker consumes restructure jobs from the queue and blocks until the
// context is cancelled.
func (a *App) runWorker(ctx context.Context) error {
	a.logger.Info("worker started, waiting for restructure jobs")

	handler := func(ctx context.Context, payload payloads.ArticleStructurePayload) error {
		a.logger.Info("processing restructure job", "article_id", payload.ArticleID)

		if err := a.blogUseCase.RestructureArticle(ctx, payload.ArticleID); err != nil {
			a.logger.Error("restructure job failed", "article_id", payload.ArticleID, "error", err)
			return err
		}

		a.logger.Info("restructure job completed", "article_id", payload.ArticleID)
		return nil
	}

	if err := a.structureConsumer.StartConsumingStructureRequests(ctx, handler); err != nil {
		return fmt.Errorf("start queue consumer: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("worker stopped")
	return nil
}
