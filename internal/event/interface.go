package event

import (
	"context"

	"mergebot/internal/model"
)

// UseCase is the webhook event dispatcher, the root of the
// reconciliation core.
type UseCase interface {
	// Handle dispatches one parsed webhook event to the matching
	// handler. Unknown event kinds and unknown action values are safe
	// no-ops; a missing required entity surfaces a not-found error.
	Handle(ctx context.Context, ev model.Event) error
}

// ProviderClient is the subset of the hosting-provider API the
// dispatcher calls directly.
type ProviderClient interface {
	ListInstallationRepos(ctx context.Context, installationXref int64) ([]model.RepoDescriptor, error)
	PostComment(ctx context.Context, repoXref int64, prNumber int, text string) error
}

// CommandRunner executes a command request extracted from a comment or
// review. Implementations own the command grammar.
type CommandRunner interface {
	Run(ctx context.Context, cmd model.Command) error
}
