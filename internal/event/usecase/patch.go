package usecase

import (
	"context"
	"errors"
	"fmt"

	"mergebot/internal/event"
	"mergebot/internal/model"
	"mergebot/internal/registry"
	"mergebot/internal/repository"
)

// handlePullRequest applies a pull-request lifecycle event to the
// project's Patch.
func (uc *implUseCase) handlePullRequest(ctx context.Context, ev model.PullRequestEvent) error {
	project, err := uc.getProjectByRepoXref(ctx, ev.RepoXref)
	if err != nil {
		return err
	}

	patch, err := uc.resolvePatch(ctx, project.ID, ev.Pr)
	if err != nil {
		return err
	}

	switch ev.Action {
	case actionOpened:
		uc.pingProject(ctx, project.ID)
		return nil

	case actionClosed:
		uc.pingProject(ctx, project.ID)
		open := false
		_, err := uc.repo.UpdatePatch(ctx, repository.UpdatePatchOptions{ID: patch.ID, Open: &open})
		return err

	case actionReopened:
		uc.pingProject(ctx, project.ID)
		open := true
		_, err := uc.repo.UpdatePatch(ctx, repository.UpdatePatchOptions{ID: patch.ID, Open: &open})
		return err

	case actionSynchronize:
		// Cancel any in-flight batch entry before the head moves, so the
		// batcher never tests a stale commit.
		if actor, regErr := uc.reg.GetBatchActor(project.ID); regErr == nil {
			actor.CancelPatch(ctx, patch.ID)
		}
		commit := ev.Pr.HeadSHA
		_, err := uc.repo.UpdatePatch(ctx, repository.UpdatePatchOptions{ID: patch.ID, Commit: &commit})
		return err

	case actionEdited:
		_, err := uc.repo.UpdatePatch(ctx, repository.UpdatePatchOptions{
			ID:           patch.ID,
			Title:        &ev.Pr.Title,
			Body:         &ev.Pr.Body,
			TargetBranch: &ev.Pr.TargetBranch,
		})
		return err

	default:
		uc.l.Infof(ctx, "event: unrecognized pull_request action %q", ev.Action)
		return nil
	}
}

// resolvePatch finds the patch for (projectID, pr.Number), creating it
// from the snapshot on first reference.
func (uc *implUseCase) resolvePatch(ctx context.Context, projectID int64, pr model.PrSnapshot) (model.Patch, error) {
	patch, err := uc.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{
		ProjectID: projectID,
		Number:    pr.Number,
	})
	if err != nil {
		return model.Patch{}, err
	}
	if patch.ID != 0 {
		return patch, nil
	}
	return uc.sync.SyncPatch(ctx, projectID, pr)
}

// pingProject signals project activity to the live batch actor. A
// registry miss is tolerated: activity tracking is best effort.
func (uc *implUseCase) pingProject(ctx context.Context, projectID int64) {
	actor, err := uc.reg.GetBatchActor(projectID)
	if err != nil {
		if errors.Is(err, registry.ErrActorNotFound) {
			uc.l.Debugf(ctx, "event: no batch actor for project %d, skipping ping", projectID)
			return
		}
		uc.l.Warnf(ctx, "event: batch actor lookup failed for project %d: %v", projectID, err)
		return
	}
	actor.Ping(ctx)
}

// getProjectByRepoXref resolves the project owning a repository; a miss
// is a fatal precondition violation for the current event.
func (uc *implUseCase) getProjectByRepoXref(ctx context.Context, repoXref int64) (model.Project, error) {
	project, err := uc.repo.GetOneProject(ctx, repository.GetOneProjectOptions{RepoXref: repoXref})
	if err != nil {
		return model.Project{}, err
	}
	if project.ID == 0 {
		return model.Project{}, fmt.Errorf("%w: repo %d", event.ErrProjectNotFound, repoXref)
	}
	return project, nil
}
