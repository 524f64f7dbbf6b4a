package synchronizer

import (
	"context"
	"fmt"

	"mergebot/internal/model"
	"mergebot/internal/repository"
)

// SyncUser upserts a user by provider reference.
func (s *implSynchronizer) SyncUser(ctx context.Context, user model.User) (model.User, error) {
	synced, err := s.repo.UpsertUser(ctx, repository.UpsertUserOptions{
		Xref:      user.Xref,
		Login:     user.Login,
		AvatarURL: user.AvatarURL,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to sync user %d: %w", user.Xref, err)
	}
	return synced, nil
}

// SyncPatch upserts the patch for (projectID, pr.Number) from a fresh
// provider snapshot. Existing patches are refreshed field by field, so a
// replayed snapshot converges to the same row.
func (s *implSynchronizer) SyncPatch(ctx context.Context, projectID int64, pr model.PrSnapshot) (model.Patch, error) {
	author, err := s.SyncUser(ctx, pr.Author)
	if err != nil {
		return model.Patch{}, err
	}

	existing, err := s.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{
		ProjectID: projectID,
		Number:    pr.Number,
	})
	if err != nil {
		return model.Patch{}, fmt.Errorf("failed to look up patch %d: %w", pr.Number, err)
	}

	open := pr.State != "closed"

	if existing.ID == 0 {
		created, err := s.repo.CreatePatch(ctx, repository.CreatePatchOptions{
			ProjectID:    projectID,
			Number:       pr.Number,
			Title:        pr.Title,
			Body:         pr.Body,
			TargetBranch: pr.TargetBranch,
			Commit:       pr.HeadSHA,
			Open:         open,
			AuthorID:     author.ID,
		})
		if err != nil {
			return model.Patch{}, fmt.Errorf("failed to create patch %d: %w", pr.Number, err)
		}
		return created, nil
	}

	updated, err := s.repo.UpdatePatch(ctx, repository.UpdatePatchOptions{
		ID:           existing.ID,
		Title:        &pr.Title,
		Body:         &pr.Body,
		TargetBranch: &pr.TargetBranch,
		Commit:       &pr.HeadSHA,
		Open:         &open,
	})
	if err != nil {
		return model.Patch{}, fmt.Errorf("failed to refresh patch %d: %w", pr.Number, err)
	}
	return updated, nil
}
