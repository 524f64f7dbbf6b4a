package usecase

import (
	"context"
	"errors"
	"testing"

	"mergebot/internal/event"
	"mergebot/internal/model"
	"mergebot/internal/repository"
)

func prSnapshot(number int) model.PrSnapshot {
	return model.PrSnapshot{
		Number:       number,
		Title:        "Add feature",
		Body:         "Feature body",
		TargetBranch: "main",
		HeadSHA:      "abc123",
		State:        "open",
		Author:       model.User{Xref: 7, Login: "octocat"},
	}
}

func TestHandlePullRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown project is a not-found error", func(t *testing.T) {
		fx := newFixture(Config{})
		err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "opened", RepoXref: 999, Number: 1, Pr: prSnapshot(1)})
		if !errors.Is(err, event.ErrProjectNotFound) {
			t.Fatalf("Handle() error = %v, want ErrProjectNotFound", err)
		}
	})

	t.Run("opened creates patch and pings batch actor", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")
		batch := &fakeBatchActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)

		err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "opened", RepoXref: 14, Number: 3, Pr: prSnapshot(3)})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		patch, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if patch.ID == 0 {
			t.Fatal("patch was not created")
		}
		if !patch.Open {
			t.Error("patch should be open")
		}
		if patch.Commit != "abc123" {
			t.Errorf("patch commit = %q, want %q", patch.Commit, "abc123")
		}
		if batch.pings != 1 {
			t.Errorf("pings = %d, want 1", batch.pings)
		}
	})

	t.Run("opened without live actor still succeeds", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")

		err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "opened", RepoXref: 14, Number: 3, Pr: prSnapshot(3)})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		patch, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if patch.ID == 0 {
			t.Fatal("patch was not created")
		}
	})

	t.Run("closed then reopened toggles the open flag", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")

		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "closed", RepoXref: 14, Number: 3, Pr: prSnapshot(3)}); err != nil {
			t.Fatalf("Handle(closed) error = %v", err)
		}
		patch, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if patch.Open {
			t.Error("patch should be closed")
		}

		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "reopened", RepoXref: 14, Number: 3, Pr: prSnapshot(3)}); err != nil {
			t.Fatalf("Handle(reopened) error = %v", err)
		}
		patch, _ = fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if !patch.Open {
			t.Error("patch should be open again")
		}
	})

	t.Run("replayed close converges", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")

		ev := model.PullRequestEvent{Action: "closed", RepoXref: 14, Number: 3, Pr: prSnapshot(3)}
		if err := fx.uc.Handle(ctx, ev); err != nil {
			t.Fatalf("first Handle() error = %v", err)
		}
		if err := fx.uc.Handle(ctx, ev); err != nil {
			t.Fatalf("second Handle() error = %v", err)
		}

		if got := len(fx.repo.patches); got != 1 {
			t.Errorf("patches = %d, want 1", got)
		}
		patch, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if patch.Open {
			t.Error("patch should stay closed")
		}
	})

	t.Run("synchronize cancels batch entry before moving the head", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")

		// Seed the patch at the old head.
		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "opened", RepoXref: 14, Number: 3, Pr: prSnapshot(3)}); err != nil {
			t.Fatalf("Handle(opened) error = %v", err)
		}
		seeded, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})

		batch := &fakeBatchActor{}
		fx.reg.RegisterBatchActor(project.ID, batch)

		moved := prSnapshot(3)
		moved.HeadSHA = "def456"
		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "synchronize", RepoXref: 14, Number: 3, Pr: moved}); err != nil {
			t.Fatalf("Handle(synchronize) error = %v", err)
		}

		if len(batch.cancelled) != 1 || batch.cancelled[0] != seeded.ID {
			t.Errorf("cancelled = %v, want [%d]", batch.cancelled, seeded.ID)
		}
		patch, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if patch.Commit != "def456" {
			t.Errorf("patch commit = %q, want %q", patch.Commit, "def456")
		}
	})

	t.Run("edited refreshes title body and target branch", func(t *testing.T) {
		fx := newFixture(Config{})
		project := fx.seedProject(ctx, 91, 14, "acme/widgets")

		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "opened", RepoXref: 14, Number: 3, Pr: prSnapshot(3)}); err != nil {
			t.Fatalf("Handle(opened) error = %v", err)
		}

		edited := prSnapshot(3)
		edited.Title = "New title"
		edited.Body = "New body"
		edited.TargetBranch = "release"
		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "edited", RepoXref: 14, Number: 3, Pr: edited}); err != nil {
			t.Fatalf("Handle(edited) error = %v", err)
		}

		patch, _ := fx.repo.GetOnePatch(ctx, repository.GetOnePatchOptions{ProjectID: project.ID, Number: 3})
		if patch.Title != "New title" || patch.Body != "New body" || patch.TargetBranch != "release" {
			t.Errorf("patch = %+v, edit not applied", patch)
		}
	})

	t.Run("unknown action is a no-op", func(t *testing.T) {
		fx := newFixture(Config{})
		fx.seedProject(ctx, 91, 14, "acme/widgets")

		if err := fx.uc.Handle(ctx, model.PullRequestEvent{Action: "labeled", RepoXref: 14, Number: 3, Pr: prSnapshot(3)}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	})
}
