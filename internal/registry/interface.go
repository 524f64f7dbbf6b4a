package registry

import (
	"context"

	"mergebot/internal/model"
)

// StatusUpdate is the message delivered to an actor when a commit status
// it is waiting on changes.
type StatusUpdate struct {
	Commit    string
	Context   string
	State     model.StatusState
	TargetURL string
}

// BatchActor is the per-project state machine running grouped
// merge-candidate tests. Sends are fire-and-forget: implementations must
// not block the caller on internal processing.
type BatchActor interface {
	// Ping marks the project as recently active.
	Ping(ctx context.Context)
	// UpdateStatus delivers a staging-commit status change.
	UpdateStatus(ctx context.Context, update StatusUpdate)
	// CancelPatch cancels any in-flight batch entry for the patch.
	CancelPatch(ctx context.Context, patchID int64)
}

// AttemptActor is the per-project state machine running a single
// ad-hoc test.
type AttemptActor interface {
	UpdateStatus(ctx context.Context, update StatusUpdate)
}

// Registry maps live per-project actors by project id. It is owned by the
// orchestration layer and injected into the event dispatcher.
type Registry interface {
	RegisterBatchActor(projectID int64, actor BatchActor)
	RegisterAttemptActor(projectID int64, actor AttemptActor)
	UnregisterBatchActor(projectID int64)
	UnregisterAttemptActor(projectID int64)

	// GetBatchActor returns ErrActorNotFound when no live actor is
	// registered for the project.
	GetBatchActor(projectID int64) (BatchActor, error)
	GetAttemptActor(projectID int64) (AttemptActor, error)
}
