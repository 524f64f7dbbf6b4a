package command

import (
	"context"
	"testing"

	"mergebot/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func TestAddressed(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"single line command", "bors r+", true},
		{"command after prose", "Looks good to me!\nbors r+", true},
		{"indented command", "  bors try", true},
		{"unaddressed comment", "Thanks for the fix", false},
		{"trigger mid-sentence", "ask bors r+ to merge", false},
		{"trigger without verb", "bors", false},
		{"trigger as prefix of another word", "borsch is great", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := addressed(tc.body, "bors"); got != tc.want {
				t.Errorf("addressed(%q) = %v, want %v", tc.body, got, tc.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	i := New("bors", &mockLogger{})
	ctx := context.Background()

	cmd := model.Command{ID: "cmd-1", ProjectID: 5, PrNumber: 3, Body: "bors r+"}
	if err := i.Run(ctx, cmd); err != nil {
		t.Errorf("Run() error = %v", err)
	}

	cmd.Body = "not for the bot"
	if err := i.Run(ctx, cmd); err != nil {
		t.Errorf("Run() on unaddressed comment error = %v", err)
	}
}
