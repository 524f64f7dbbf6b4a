package synchronizer

import (
	"context"

	"mergebot/internal/model"
)

// Synchronizer keeps local entities converged with the provider's
// reported state. Every operation is idempotent: replaying the same
// input produces the same rows.
type Synchronizer interface {
	// SyncUser upserts a user by provider reference.
	SyncUser(ctx context.Context, user model.User) (model.User, error)

	// SyncPatch upserts the patch for (projectID, pr.Number) from a
	// fresh provider snapshot.
	SyncPatch(ctx context.Context, projectID int64, pr model.PrSnapshot) (model.Patch, error)

	// EnqueueProjectSync schedules a full background sync of the
	// project's open pull requests. Fire-and-forget, at-least-once.
	EnqueueProjectSync(projectID int64)
}

// ProviderClient is the subset of the hosting-provider API the
// synchronizer needs.
type ProviderClient interface {
	ListOpenPulls(ctx context.Context, repoXref int64) ([]model.PrSnapshot, error)
}
