package track

import (
	"context"
	"log/slog"
)

// Enqueuer hands a record off for asynchronous persistence.
type Enqueuer interface {
	EnqueueInteractionRecord(rec Record) error
}

// Recorder logs prompt/response exchanges best-effort. Record never
// returns an error and never panics the caller: observability must
// not break the generation flow. A nil Recorder is a no-op.
type Recorder struct {
	queue Enqueuer
	tags  Tags
}

func NewRecorder(queue Enqueuer, tags Tags) *Recorder {
	return &Recorder{queue: queue, tags: tags}
}

func (r *Recorder) Record(ctx context.Context, endpoint, prompt, response, model string) {
	if r == nil || r.queue == nil {
		return
	}

	rec := NewRecord(endpoint, prompt, response, model, r.tags)
	if err := r.queue.EnqueueInteractionRecord(rec); err != nil {
		slog.Warn("interaction record dropped",
			"endpoint", endpoint,
			"record_id", rec.ID,
			"error", err,
		)
		return
	}

	slog.Debug("interaction record enqueued", "endpoint", endpoint, "record_id", rec.ID)
}
