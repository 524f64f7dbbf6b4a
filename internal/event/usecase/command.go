package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mergebot/internal/event"
	"mergebot/internal/model"
	"mergebot/internal/repository"
)

// handleIssueComment forwards a qualifying issue comment as a command.
// Comments on plain issues (no pull-request link) and non-created
// actions are no-ops, not errors.
func (uc *implUseCase) handleIssueComment(ctx context.Context, ev model.IssueCommentEvent) error {
	if ev.Action != actionCreated || !ev.IsPullRequest {
		return nil
	}

	project, err := uc.getProjectByRepoXref(ctx, ev.RepoXref)
	if err != nil {
		return err
	}

	commenter, err := uc.sync.SyncUser(ctx, ev.Commenter)
	if err != nil {
		return err
	}

	// Issue comment payloads carry no PR snapshot, so the patch must
	// already be known locally.
	patch, err := uc.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{
		ProjectID: project.ID,
		Number:    ev.IssueNumber,
	})
	if err != nil {
		return err
	}
	if patch.ID == 0 {
		return fmt.Errorf("%w: project %d PR %d", event.ErrPatchNotFound, project.ID, ev.IssueNumber)
	}

	return uc.submitCommand(ctx, project, commenter, ev.Body, patch)
}

// handleReviewComment forwards a qualifying review comment as a
// command, refreshing the patch from the supplied PR snapshot.
func (uc *implUseCase) handleReviewComment(ctx context.Context, ev model.ReviewCommentEvent) error {
	if ev.Action != actionCreated {
		return nil
	}
	return uc.extractPrCommand(ctx, ev.RepoXref, ev.Commenter, ev.Body, ev.Pr)
}

// handleReview forwards a submitted review as a command, refreshing the
// patch from the supplied PR snapshot.
func (uc *implUseCase) handleReview(ctx context.Context, ev model.ReviewEvent) error {
	if ev.Action != actionSubmitted {
		return nil
	}
	return uc.extractPrCommand(ctx, ev.RepoXref, ev.Reviewer, ev.Body, ev.Pr)
}

// extractPrCommand is the shared path for events that carry a fresh PR
// snapshot alongside the comment body.
func (uc *implUseCase) extractPrCommand(ctx context.Context, repoXref int64, author model.User, body string, pr model.PrSnapshot) error {
	project, err := uc.getProjectByRepoXref(ctx, repoXref)
	if err != nil {
		return err
	}

	commenter, err := uc.sync.SyncUser(ctx, author)
	if err != nil {
		return err
	}

	patch, err := uc.sync.SyncPatch(ctx, project.ID, pr)
	if err != nil {
		return err
	}

	return uc.submitCommand(ctx, project, commenter, body, patch)
}

// submitCommand builds the command request and hands it to the
// interpreter.
func (uc *implUseCase) submitCommand(ctx context.Context, project model.Project, commenter model.User, body string, patch model.Patch) error {
	cmd := model.Command{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Commenter: commenter,
		Body:      body,
		PrNumber:  patch.Number,
		Patch:     &patch,
	}

	if err := uc.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to run command %s: %w", cmd.ID, err)
	}
	return nil
}
