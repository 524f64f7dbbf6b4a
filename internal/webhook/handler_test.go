package webhook

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"mergebot/internal/event"
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

type mockUseCase struct {
	handled []model.Event
	err     error
}

func (m *mockUseCase) Handle(ctx context.Context, ev model.Event) error {
	m.handled = append(m.handled, ev)
	return m.err
}

const testSecret = "topsecret"

func deliver(h *Handler, eventType string, payload []byte, sign bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewReader(payload))
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "delivery-1")
	if sign {
		req.Header.Set("X-Hub-Signature-256", signPayload(testSecret, payload))
	}
	c.Request = req

	h.HandleGitHub(c)
	return w
}

func TestHandleGitHub(t *testing.T) {
	payload := []byte(`{
		"action": "created",
		"installation": {"id": 91},
		"sender": {"id": 7, "login": "octocat"}
	}`)

	t.Run("valid delivery is dispatched", func(t *testing.T) {
		uc := &mockUseCase{}
		h := NewHandler(&mockLogger{}, uc, SecurityConfig{Secret: testSecret})

		w := deliver(h, "installation", payload, true)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(uc.handled) != 1 {
			t.Fatalf("handled = %d, want 1", len(uc.handled))
		}
		if _, ok := uc.handled[0].(model.InstallationEvent); !ok {
			t.Errorf("handled event type = %T, want InstallationEvent", uc.handled[0])
		}
	})

	t.Run("missing signature is unauthorized", func(t *testing.T) {
		uc := &mockUseCase{}
		h := NewHandler(&mockLogger{}, uc, SecurityConfig{Secret: testSecret})

		w := deliver(h, "installation", payload, false)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		if len(uc.handled) != 0 {
			t.Error("unsigned delivery must not be dispatched")
		}
	})

	t.Run("unknown event type is acknowledged and ignored", func(t *testing.T) {
		uc := &mockUseCase{}
		h := NewHandler(&mockLogger{}, uc, SecurityConfig{Secret: testSecret})

		w := deliver(h, "workflow_run", []byte(`{}`), true)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(uc.handled) != 0 {
			t.Error("unknown event type must not be dispatched")
		}
	})

	t.Run("malformed payload is a bad request", func(t *testing.T) {
		uc := &mockUseCase{}
		h := NewHandler(&mockLogger{}, uc, SecurityConfig{Secret: testSecret})

		w := deliver(h, "installation", []byte(`{"action": "created"}`), true)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("missing entity maps to 404", func(t *testing.T) {
		uc := &mockUseCase{err: fmt.Errorf("%w: repo 14", event.ErrProjectNotFound)}
		h := NewHandler(&mockLogger{}, uc, SecurityConfig{Secret: testSecret})

		w := deliver(h, "installation", payload, true)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("dispatcher failure maps to 500", func(t *testing.T) {
		uc := &mockUseCase{err: fmt.Errorf("db down")}
		h := NewHandler(&mockLogger{}, uc, SecurityConfig{Secret: testSecret})

		w := deliver(h, "installation", payload, true)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}
