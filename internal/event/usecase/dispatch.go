package usecase

import (
	"context"

	"mergebot/internal/model"
)

// Handle dispatches one parsed webhook event to the matching handler.
// Every defined event/action combination has an explicit branch; the
// fallback is a logged no-op so no event can crash processing.
func (uc *implUseCase) Handle(ctx context.Context, ev model.Event) error {
	switch e := ev.(type) {
	case model.PingEvent:
		uc.l.Debugf(ctx, "event: ping")
		return nil

	case model.InstallationEvent:
		return uc.handleInstallation(ctx, e)

	case model.InstallationReposEvent:
		return uc.handleInstallationRepos(ctx, e)

	case model.PullRequestEvent:
		return uc.handlePullRequest(ctx, e)

	case model.IssueCommentEvent:
		return uc.handleIssueComment(ctx, e)

	case model.ReviewCommentEvent:
		return uc.handleReviewComment(ctx, e)

	case model.ReviewEvent:
		return uc.handleReview(ctx, e)

	case model.StatusEvent:
		return uc.handleStatus(ctx, e)

	default:
		uc.l.Infof(ctx, "event: ignoring unsupported event %T", ev)
		return nil
	}
}
