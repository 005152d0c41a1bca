package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"recipe-planner/internal/app"
	"recipe-planner/internal/config"
	"recipe-planner/internal/database/dbtest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	adminID = int64(42)
	aliceID = int64(7)
)

type fakeAPI struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeAPI) HandleUpdate(r *http.Request) (*tgbotapi.Update, error) {
	return (&tgbotapi.BotAPI{}).HandleUpdate(r)
}

func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := dbtest.New(t)
	cfg := &config.Config{
		DatabasePath:           t.TempDir() + "/test.db",
		JWTSecret:              "test-secret",
		TokenTTL:               time.Hour,
		TelegramAllowedUserIDs: []int64{adminID, aliceID},
		AdminTelegramID:        adminID,
	}
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	a, err := app.NewApp(cfg, db, zap.NewNop(), client)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return NewHandler(a, NewSessionRepository(db.SQL), cfg, zap.NewNop())
}

func update(from int64, text string) string {
	return fmt.Sprintf(`{"update_id":1,"message":{"message_id":1,"date":0,`+
		`"from":{"id":%d,"is_bot":false,"first_name":"A","username":"alice"},`+
		`"chat":{"id":%d,"type":"private"},"text":%q}}`, from, from, text)
}

func TestWebhook(t *testing.T) {
	t.Run("AnswersAllowedUser", func(t *testing.T) {
		api := &fakeAPI{}
		h := newTestHandler(t)
		b := newBot(api, h, h.cfg, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(update(aliceID, "/help")))
		rec := httptest.NewRecorder()
		b.handleWebhook(rec, req)
		b.Wait()

		got := api.texts()
		if len(got) != 1 || got[0] != helpText {
			t.Errorf("expected help text, got %q", got)
		}
	})

	t.Run("IgnoresStrangers", func(t *testing.T) {
		api := &fakeAPI{}
		h := newTestHandler(t)
		b := newBot(api, h, h.cfg, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(update(99, "/help")))
		rec := httptest.NewRecorder()
		b.handleWebhook(rec, req)
		b.Wait()

		if got := api.texts(); len(got) != 0 {
			t.Errorf("expected no reply, got %q", got)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("RejectsGet", func(t *testing.T) {
		h := newTestHandler(t)
		b := newBot(&fakeAPI{}, h, h.cfg, zap.NewNop())

		rec := httptest.NewRecorder()
		b.handleWebhook(rec, httptest.NewRequest(http.MethodGet, "/webhook", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("LinkIsAcknowledgedThenEdited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><h1>Omelette</h1><ul class="ingredients"><li>3 eggs</li></ul></body></html>`)
		}))
		defer srv.Close()

		api := &fakeAPI{}
		h := newTestHandler(t)
		b := newBot(api, h, h.cfg, zap.NewNop())
		if got := h.Handle(context.Background(), Message{TelegramID: aliceID, Username: "alice", Text: "/add_ingredient eggs pcs"}); !strings.Contains(got, "Added eggs") {
			t.Fatalf("unexpected reply: %s", got)
		}

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(update(aliceID, srv.URL)))
		b.handleWebhook(httptest.NewRecorder(), req)
		b.Wait()

		api.mu.Lock()
		defer api.mu.Unlock()
		if len(api.sent) != 2 {
			t.Fatalf("expected status and edit, got %d messages", len(api.sent))
		}
		edit, ok := api.sent[1].(tgbotapi.EditMessageTextConfig)
		if !ok {
			t.Fatalf("expected an edit, got %T", api.sent[1])
		}
		if edit.MessageID != 1 || !strings.Contains(edit.Text, "Recipe saved: Omelette (1 ingredients)") {
			t.Errorf("unexpected edit: %+v", edit)
		}
	})
}

func TestRegisterHandlers(t *testing.T) {
	h := newTestHandler(t)
	b := newBot(&fakeAPI{}, h, h.cfg, zap.NewNop())
	mux := http.NewServeMux()
	b.RegisterHandlers(mux)

	for path, want := range map[string]string{"/health": "OK", "/metrics": "go_goroutines"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), want) {
			t.Errorf("%s: expected 200 with %q, got %d %s", path, want, rec.Code, rec.Body.String())
		}
	}
}
