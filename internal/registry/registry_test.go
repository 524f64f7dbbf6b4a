package registry_test

import (
	"context"
	"errors"
	"testing"

	"mergebot/internal/registry"
)

type fakeBatchActor struct {
	pings   int
	cancels []int64
	updates []registry.StatusUpdate
}

func (f *fakeBatchActor) Ping(ctx context.Context) { f.pings++ }
func (f *fakeBatchActor) UpdateStatus(ctx context.Context, u registry.StatusUpdate) {
	f.updates = append(f.updates, u)
}
func (f *fakeBatchActor) CancelPatch(ctx context.Context, patchID int64) {
	f.cancels = append(f.cancels, patchID)
}

type fakeAttemptActor struct {
	updates []registry.StatusUpdate
}

func (f *fakeAttemptActor) UpdateStatus(ctx context.Context, u registry.StatusUpdate) {
	f.updates = append(f.updates, u)
}

func TestRegistry(t *testing.T) {
	t.Run("Lookup Miss", func(t *testing.T) {
		reg := registry.New()

		if _, err := reg.GetBatchActor(7); !errors.Is(err, registry.ErrActorNotFound) {
			t.Errorf("expected ErrActorNotFound, got %v", err)
		}
		if _, err := reg.GetAttemptActor(7); !errors.Is(err, registry.ErrActorNotFound) {
			t.Errorf("expected ErrActorNotFound, got %v", err)
		}
	})

	t.Run("Register And Lookup", func(t *testing.T) {
		reg := registry.New()
		batch := &fakeBatchActor{}
		attempt := &fakeAttemptActor{}

		reg.RegisterBatchActor(1, batch)
		reg.RegisterAttemptActor(1, attempt)

		got, err := reg.GetBatchActor(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got.Ping(context.Background())
		if batch.pings != 1 {
			t.Errorf("expected ping to reach registered actor")
		}

		if _, err := reg.GetAttemptActor(1); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Unregister", func(t *testing.T) {
		reg := registry.New()
		reg.RegisterBatchActor(2, &fakeBatchActor{})
		reg.UnregisterBatchActor(2)

		if _, err := reg.GetBatchActor(2); !errors.Is(err, registry.ErrActorNotFound) {
			t.Errorf("expected ErrActorNotFound after unregister, got %v", err)
		}
	})

	t.Run("Replace Keeps Latest", func(t *testing.T) {
		reg := registry.New()
		old := &fakeBatchActor{}
		replacement := &fakeBatchActor{}

		reg.RegisterBatchActor(3, old)
		reg.RegisterBatchActor(3, replacement)

		got, err := reg.GetBatchActor(3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got.CancelPatch(context.Background(), 9)
		if len(old.cancels) != 0 || len(replacement.cancels) != 1 {
			t.Errorf("expected replacement actor to receive the message")
		}
	})
}
