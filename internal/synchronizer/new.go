package synchronizer

import (
	"time"

	"mergebot/internal/repository"
	pkgLog "mergebot/pkg/log"
)

type implSynchronizer struct {
	repo     repository.Repository
	provider ProviderClient
	cfg      Config
	jobs     chan projectSyncJob
	l        pkgLog.Logger
}

// Ensure implSynchronizer implements Synchronizer interface
var _ Synchronizer = (*implSynchronizer)(nil)

// New creates a queue-backed Synchronizer. Call Start to launch the
// background worker.
func New(repo repository.Repository, provider ProviderClient, cfg Config, l pkgLog.Logger) *implSynchronizer {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Second
	}
	return &implSynchronizer{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
		jobs:     make(chan projectSyncJob, cfg.QueueSize),
		l:        l,
	}
}
