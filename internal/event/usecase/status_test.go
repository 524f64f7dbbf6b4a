package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mergebot/internal/event"
	"mergebot/internal/model"
)

func statusEvent(message, state string) model.StatusEvent {
	return model.StatusEvent{
		RepoXref:      14,
		SHA:           "abc123",
		Context:       "ci/test",
		State:         state,
		TargetURL:     "https://ci.example.com/run/1",
		CommitMessage: message,
	}
}

func TestHandleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown project is a not-found error", func(t *testing.T) {
		fx := newFixture(Config{})
		err := fx.uc.Handle(ctx, statusEvent("Merge #3", "success"))
		if !errors.Is(err, event.ErrProjectNotFound) {
			t.Fatalf("Handle() error = %v, want ErrProjectNotFound", err)
		}
	})

	t.Run("merge commit goes to the batch actor only", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")
		batch := &fakeBatchActor{}
		attempt := &fakeAttemptActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)
		fx.reg.RegisterAttemptActor(project.ID, attempt)

		if err := fx.uc.Handle(ctx, statusEvent("Merge #3: add feature", "success")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		if len(batch.statuses) != 1 {
			t.Fatalf("batch statuses = %d, want 1", len(batch.statuses))
		}
		if len(attempt.statuses) != 0 {
			t.Errorf("attempt statuses = %d, want 0", len(attempt.statuses))
		}

		got := batch.statuses[0]
		if got.Commit != "abc123" || got.Context != "ci/test" || got.State != model.StatusOK {
			t.Errorf("status = %+v, want mapped OK update for abc123", got)
		}
	})

	t.Run("try commit goes to the attempt actor only", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")
		batch := &fakeBatchActor{}
		attempt := &fakeAttemptActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)
		fx.reg.RegisterAttemptActor(project.ID, attempt)

		if err := fx.uc.Handle(ctx, statusEvent("Try #3: add feature", "pending")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		if len(attempt.statuses) != 1 {
			t.Fatalf("attempt statuses = %d, want 1", len(attempt.statuses))
		}
		if len(batch.statuses) != 0 {
			t.Errorf("batch statuses = %d, want 0", len(batch.statuses))
		}
		if attempt.statuses[0].State != model.StatusPending {
			t.Errorf("state = %v, want pending", attempt.statuses[0].State)
		}
	})

	t.Run("failure maps to the error state", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")
		batch := &fakeBatchActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)

		if err := fx.uc.Handle(ctx, statusEvent("Merge #3", "failure")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(batch.statuses) != 1 || batch.statuses[0].State != model.StatusError {
			t.Errorf("statuses = %+v, want one error update", batch.statuses)
		}
	})

	t.Run("unmapped state is dropped", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")
		batch := &fakeBatchActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)

		if err := fx.uc.Handle(ctx, statusEvent("Merge #3", "queued")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(batch.statuses) != 0 {
			t.Errorf("statuses = %d, want 0 for unmapped state", len(batch.statuses))
		}
	})

	t.Run("registry miss drops the update without error", func(t *testing.T) {
		fx := newFixture(Config{})
		fx.seedProject(ctx, 91, 14, "acme/widgets")

		if err := fx.uc.Handle(ctx, statusEvent("Merge #3", "success")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	})

	t.Run("unmanaged commit message is a no-op", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")
		batch := &fakeBatchActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)

		if err := fx.uc.Handle(ctx, statusEvent("Fix typo in docs", "success")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(batch.statuses) != 0 {
			t.Errorf("statuses = %d, want 0 for unmanaged commit", len(batch.statuses))
		}
	})
}

func TestHandleStagingTmpStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("error state posts a comment on the originating PR", func(t *testing.T) {
		fx := newFixture(Config{})
		fx.seedProject(ctx, 91, 14, "acme/widgets")

		ev := statusEvent("[ci skip] -bors-staging-tmp-42", "error")
		if err := fx.uc.Handle(ctx, ev); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		if len(fx.provider.comments) != 1 {
			t.Fatalf("comments = %d, want 1", len(fx.provider.comments))
		}
		if !strings.Contains(fx.provider.comments[0], "staging branch") {
			t.Errorf("comment = %q, want staging branch explanation", fx.provider.comments[0])
		}
	})

	t.Run("non-error states post nothing", func(t *testing.T) {
		fx := newFixture(Config{})
		fx.seedProject(ctx, 91, 14, "acme/widgets")

		for _, state := range []string{"pending", "success"} {
			if err := fx.uc.Handle(ctx, statusEvent("[ci skip] -bors-staging-tmp-42", state)); err != nil {
				t.Fatalf("Handle(%s) error = %v", state, err)
			}
		}
		if len(fx.provider.comments) != 0 {
			t.Errorf("comments = %d, want 0", len(fx.provider.comments))
		}
	})

	t.Run("malformed suffix is dropped", func(t *testing.T) {
		fx := newFixture(Config{})
		fx.seedProject(ctx, 91, 14, "acme/widgets")

		if err := fx.uc.Handle(ctx, statusEvent("[ci skip] -bors-staging-tmp-xyz", "error")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(fx.provider.comments) != 0 {
			t.Errorf("comments = %d, want 0", len(fx.provider.comments))
		}
	})
}
