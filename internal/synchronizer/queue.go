package synchronizer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mergebot/internal/repository"
)

// EnqueueProjectSync schedules a full background sync of the project.
// Fire-and-forget: a full queue drops the job with a warning; the
// provider's webhook redelivery covers the gap.
func (s *implSynchronizer) EnqueueProjectSync(projectID int64) {
	job := projectSyncJob{ID: uuid.NewString(), ProjectID: projectID}

	select {
	case s.jobs <- job:
	default:
		s.l.Warnf(context.Background(), "synchronizer: queue full, dropping job %s for project %d", job.ID, projectID)
	}
}

// Start launches the background worker. It returns when ctx is cancelled.
func (s *implSynchronizer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				s.l.Info(ctx, "synchronizer: worker stopped")
				return
			case job := <-s.jobs:
				s.runJobWithRetry(ctx, job)
			}
		}
	}()
}

// runJobWithRetry syncs a project with exponential backoff.
func (s *implSynchronizer) runJobWithRetry(ctx context.Context, job projectSyncJob) {
	backoff := s.cfg.RetryBackoff

	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		err := s.syncProject(ctx, job.ProjectID)
		if err == nil {
			s.l.Infof(ctx, "synchronizer: job %s synced project %d", job.ID, job.ProjectID)
			return
		}

		s.l.Warnf(ctx, "synchronizer: job %s failed (retry %d/%d): %v", job.ID, attempt, s.cfg.MaxRetries, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	s.l.Errorf(ctx, "synchronizer: job %s gave up on project %d after %d retries", job.ID, job.ProjectID, s.cfg.MaxRetries)
}

// syncProject pulls the project's open pull requests from the provider
// and upserts a patch for each.
func (s *implSynchronizer) syncProject(ctx context.Context, projectID int64) error {
	project, err := s.repo.GetOneProject(ctx, repository.GetOneProjectOptions{ID: projectID})
	if err != nil {
		return err
	}
	if project.ID == 0 {
		// Project deleted while the job was queued. Nothing to sync.
		s.l.Infof(ctx, "synchronizer: project %d no longer exists, skipping", projectID)
		return nil
	}

	pulls, err := s.provider.ListOpenPulls(ctx, project.RepoXref)
	if err != nil {
		return err
	}

	for _, pr := range pulls {
		if _, err := s.SyncPatch(ctx, project.ID, pr); err != nil {
			return err
		}
	}
	return nil
}
