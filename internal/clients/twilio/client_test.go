package twilio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string, maxRetries int) Client {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)

	c, err := New(log, Config{
		AccountSID:  "AC_test",
		AuthToken:   "token",
		BaseURL:     baseURL,
		DefaultFrom: "+10000000000",
		Timeout:     2 * time.Second,
		MaxRetries:  maxRetries,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSendSMS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Accounts/AC_test/Messages.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC_test" || pass != "token" {
			t.Errorf("missing or wrong basic auth")
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("To"); got != "+15551234567" {
			t.Errorf("To: got=%q", got)
		}
		if got := r.PostFormValue("Body"); got == "" {
			t.Error("empty Body")
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Message{SID: "SM123", Status: "queued"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	msg, err := c.SendSMS(context.Background(), "+15551234567", "Reminder: you are the preacher.")
	if err != nil {
		t.Fatalf("SendSMS: %v", err)
	}
	if msg.SID != "SM123" {
		t.Fatalf("sid: got=%q want=SM123", msg.SID)
	}
}

func TestSendSMSRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Message{SID: "SM456", Status: "queued"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	msg, err := c.SendSMS(context.Background(), "+15551234567", "hola")
	if err != nil {
		t.Fatalf("SendSMS: %v", err)
	}
	if msg.SID != "SM456" {
		t.Fatalf("sid: got=%q want=SM456", msg.SID)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls: got=%d want=2", got)
	}
}

func TestSendSMSDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"code": 21211, "message": "invalid 'To' number"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	if _, err := c.SendSMS(context.Background(), "bogus", "hola"); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls: got=%d want=1 (4xx must not retry)", got)
	}
}
