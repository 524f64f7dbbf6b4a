package usecase

import (
	"context"
	"fmt"

	"mergebot/internal/model"
	"mergebot/internal/repository"
)

// handleInstallation applies an installation lifecycle event.
func (uc *implUseCase) handleInstallation(ctx context.Context, ev model.InstallationEvent) error {
	switch ev.Action {
	case actionCreated:
		var created []int64
		err := uc.repo.WithTransaction(ctx, func(txRepo repository.Repository) error {
			var txErr error
			created, txErr = uc.reconcileInstallation(ctx, txRepo, ev.InstallationXref, ev.Sender)
			return txErr
		})
		if err != nil {
			return fmt.Errorf("failed to reconcile installation %d: %w", ev.InstallationXref, err)
		}
		// Sync jobs are queued only after the transaction committed, so
		// the worker always sees the new projects.
		for _, projectID := range created {
			uc.sync.EnqueueProjectSync(projectID)
		}
		return nil

	case actionDeleted:
		if err := uc.repo.DeleteInstallationByXref(ctx, ev.InstallationXref); err != nil {
			return fmt.Errorf("failed to delete installation %d: %w", ev.InstallationXref, err)
		}
		uc.l.Infof(ctx, "event: installation %d deleted", ev.InstallationXref)
		return nil

	default:
		uc.l.Debugf(ctx, "event: ignoring installation action %q", ev.Action)
		return nil
	}
}

// handleInstallationRepos applies a repository-visibility change event.
func (uc *implUseCase) handleInstallationRepos(ctx context.Context, ev model.InstallationReposEvent) error {
	sender, err := uc.sync.SyncUser(ctx, ev.Sender)
	if err != nil {
		return err
	}

	for _, removed := range ev.Removed {
		if err := uc.repo.DeleteProjectByRepoXref(ctx, removed.Xref); err != nil {
			return fmt.Errorf("failed to delete project for repo %d: %w", removed.Xref, err)
		}
	}

	if len(ev.Added) == 0 {
		return nil
	}

	installation, err := uc.getOrCreateInstallation(ctx, uc.repo, ev.InstallationXref)
	if err != nil {
		return err
	}

	created, err := uc.reconcileRepos(ctx, uc.repo, installation, sender, ev.Added)
	if err != nil {
		return err
	}
	for _, projectID := range created {
		uc.sync.EnqueueProjectSync(projectID)
	}
	return nil
}

// reconcileInstallation upserts the installation, the triggering sender
// and every repository the provider reports for it. Returns the ids of
// newly created projects.
func (uc *implUseCase) reconcileInstallation(ctx context.Context, r repository.Repository, installationXref int64, sender model.User) ([]int64, error) {
	installation, err := uc.getOrCreateInstallation(ctx, r, installationXref)
	if err != nil {
		return nil, err
	}

	user, err := r.UpsertUser(ctx, repository.UpsertUserOptions{
		Xref:      sender.Xref,
		Login:     sender.Login,
		AvatarURL: sender.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	repos, err := uc.provider.ListInstallationRepos(ctx, installationXref)
	if err != nil {
		return nil, err
	}

	return uc.reconcileRepos(ctx, r, installation, user, repos)
}

// reconcileRepos makes one project per reported repository, skipping
// private repositories when disallowed and repositories that already
// have a project. Existence is checked before every insert, so replayed
// events never create duplicates.
func (uc *implUseCase) reconcileRepos(ctx context.Context, r repository.Repository, installation model.Installation, sender model.User, repos []model.RepoDescriptor) ([]int64, error) {
	var created []int64

	for _, repoDesc := range repos {
		if repoDesc.Private && !uc.cfg.AllowPrivateRepos {
			uc.l.Debugf(ctx, "event: skipping private repo %s", repoDesc.Name)
			continue
		}

		existing, err := r.GetOneProject(ctx, repository.GetOneProjectOptions{RepoXref: repoDesc.Xref})
		if err != nil {
			return nil, err
		}
		if existing.ID != 0 {
			continue
		}

		project, err := r.CreateProject(ctx, repository.CreateProjectOptions{
			RepoXref:       repoDesc.Xref,
			Name:           repoDesc.Name,
			InstallationID: installation.ID,
		})
		if err != nil {
			return nil, err
		}

		if err := uc.linkUserProject(ctx, r, sender.ID, project.ID); err != nil {
			return nil, err
		}

		uc.l.Infof(ctx, "event: onboarded project %s (repo %d)", project.Name, project.RepoXref)
		created = append(created, project.ID)
	}
	return created, nil
}

// getOrCreateInstallation resolves an installation by provider
// reference, creating it on first sight.
func (uc *implUseCase) getOrCreateInstallation(ctx context.Context, r repository.Repository, xref int64) (model.Installation, error) {
	installation, err := r.GetOneInstallation(ctx, repository.GetOneInstallationOptions{Xref: xref})
	if err != nil {
		return model.Installation{}, err
	}
	if installation.ID != 0 {
		return installation, nil
	}
	return r.CreateInstallation(ctx, repository.CreateInstallationOptions{Xref: xref})
}

// linkUserProject inserts the user/project link unless it already exists.
func (uc *implUseCase) linkUserProject(ctx context.Context, r repository.Repository, userID, projectID int64) error {
	link, err := r.GetOneLinkUserProject(ctx, repository.GetOneLinkUserProjectOptions{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		return err
	}
	if link.UserID != 0 {
		return nil
	}
	return r.CreateLinkUserProject(ctx, repository.CreateLinkUserProjectOptions{
		UserID:    userID,
		ProjectID: projectID,
	})
}
