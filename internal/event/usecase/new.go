package usecase

import (
	"mergebot/internal/event"
	"mergebot/internal/registry"
	"mergebot/internal/repository"
	"mergebot/internal/synchronizer"
	"mergebot/pkg/log"
)

// Config holds dispatcher policy settings.
type Config struct {
	// AllowPrivateRepos controls whether private repositories may be
	// onboarded as projects during reconciliation.
	AllowPrivateRepos bool
}

// implUseCase is the private implementation of event.UseCase.
type implUseCase struct {
	repo     repository.Repository
	provider event.ProviderClient
	reg      registry.Registry
	sync     synchronizer.Synchronizer
	runner   event.CommandRunner
	cfg      Config
	l        log.Logger
}

// Ensure implUseCase implements UseCase interface
var _ event.UseCase = (*implUseCase)(nil)

// New creates a new event UseCase implementation.
func New(
	repo repository.Repository,
	provider event.ProviderClient,
	reg registry.Registry,
	sync synchronizer.Synchronizer,
	runner event.CommandRunner,
	cfg Config,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		repo:     repo,
		provider: provider,
		reg:      reg,
		sync:     sync,
		runner:   runner,
		cfg:      cfg,
		l:        l,
	}
}
