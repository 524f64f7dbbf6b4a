package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mergebot/internal/model"
	"mergebot/internal/registry"
)

// handleStatus routes a commit-status update by the leading tokens of
// the associated commit's message. Messages outside the wire contract
// are not statuses this system manages.
func (uc *implUseCase) handleStatus(ctx context.Context, ev model.StatusEvent) error {
	project, err := uc.getProjectByRepoXref(ctx, ev.RepoXref)
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(ev.CommitMessage, msgPrefixMerge):
		return uc.forwardStatus(ctx, ev, project.ID, true)

	case strings.HasPrefix(ev.CommitMessage, msgPrefixTry):
		return uc.forwardStatus(ctx, ev, project.ID, false)

	case strings.HasPrefix(ev.CommitMessage, msgPrefixStagingTmp):
		return uc.handleStagingTmpStatus(ctx, ev)

	default:
		uc.l.Debugf(ctx, "event: status for unmanaged commit %s", ev.SHA)
		return nil
	}
}

// forwardStatus maps the raw provider state and delivers the update to
// the project's batch or attempt actor. A registry miss means the actor
// is not live yet (restart race); the update is dropped, the provider's
// redelivery covers it.
func (uc *implUseCase) forwardStatus(ctx context.Context, ev model.StatusEvent, projectID int64, toBatch bool) error {
	state, ok := model.ParseStatusState(ev.State)
	if !ok {
		uc.l.Warnf(ctx, "event: unmapped status state %q for commit %s, dropping", ev.State, ev.SHA)
		return nil
	}

	update := registry.StatusUpdate{
		Commit:    ev.SHA,
		Context:   ev.Context,
		State:     state,
		TargetURL: ev.TargetURL,
	}

	if toBatch {
		actor, err := uc.reg.GetBatchActor(projectID)
		if err != nil {
			uc.l.Warnf(ctx, "event: no batch actor for project %d, dropping status for %s", projectID, ev.SHA)
			return nil
		}
		actor.UpdateStatus(ctx, update)
		return nil
	}

	actor, err := uc.reg.GetAttemptActor(projectID)
	if err != nil {
		uc.l.Warnf(ctx, "event: no attempt actor for project %d, dropping status for %s", projectID, ev.SHA)
		return nil
	}
	actor.UpdateStatus(ctx, update)
	return nil
}

// handleStagingTmpStatus handles the probe status of a stale temporary
// staging branch. An error state gets an explanatory comment on the
// originating pull request; anything else is a no-op.
func (uc *implUseCase) handleStagingTmpStatus(ctx context.Context, ev model.StatusEvent) error {
	suffix := strings.TrimPrefix(ev.CommitMessage, msgPrefixStagingTmp)
	prNumber, err := strconv.Atoi(strings.TrimSpace(suffix))
	if err != nil {
		uc.l.Warnf(ctx, "event: malformed staging-tmp message %q", ev.CommitMessage)
		return nil
	}

	state, ok := model.ParseStatusState(ev.State)
	if !ok || state != model.StatusError {
		return nil
	}

	text := fmt.Sprintf(
		"Preparing the staging branch failed with status %q (context %q). This usually means the temporary staging branch went stale; retry the command.",
		ev.State, ev.Context,
	)
	if err := uc.provider.PostComment(ctx, ev.RepoXref, prNumber, text); err != nil {
		return fmt.Errorf("failed to post staging-tmp comment on PR %d: %w", prNumber, err)
	}
	uc.l.Infof(ctx, "event: posted staging-tmp failure comment on PR %d", prNumber)
	return nil
}
