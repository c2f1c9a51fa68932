package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/careerkit/companion/internal/track"
)

// InteractionWorker drains the interaction-record queue: one row in
// Postgres plus the raw prompt/response artifacts in S3 per record.
type InteractionWorker struct {
	store     *track.Store
	artifacts *track.ArtifactStore
}

func NewInteractionWorker(store *track.Store, artifacts *track.ArtifactStore) *InteractionWorker {
	return &InteractionWorker{store: store, artifacts: artifacts}
}

func (w *InteractionWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var rec track.Record
	if err := json.Unmarshal(t.Payload(), &rec); err != nil {
		return fmt.Errorf("unmarshal interaction record: %w", err)
	}

	if err := w.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("persist interaction %s: %w", rec.ID, err)
	}

	// Artifact loss is tolerable; the row already landed. Do not
	// retry the whole task for it.
	if err := w.artifacts.Put(ctx, rec); err != nil {
		slog.Warn("failed to store interaction artifacts", "record_id", rec.ID, "error", err)
	}

	slog.Info("interaction recorded", "record_id", rec.ID, "endpoint", rec.Endpoint)
	return nil
}
