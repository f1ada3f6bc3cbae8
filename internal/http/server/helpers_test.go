package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"kidzplay/internal/config"
	"kidzplay/internal/domain"
	"kidzplay/internal/http/handlers"
	"kidzplay/internal/http/server"
	"kidzplay/internal/repos"
	"kidzplay/internal/services"
)

const testSecret = "test-secret"

// countingStore records how often the store is reached.
type countingStore struct {
	repos.Store
	calls atomic.Int64
}

func (s *countingStore) Find(ctx context.Context, coll string, q repos.Query) ([]domain.Document, error) {
	s.calls.Add(1)
	return s.Store.Find(ctx, coll, q)
}

func (s *countingStore) FindOne(ctx context.Context, coll, id string) (domain.Document, error) {
	s.calls.Add(1)
	return s.Store.FindOne(ctx, coll, id)
}

type fakeProcessor struct {
	calls    int
	amount   int64
	currency string
	secret   string
	err      error
}

func (f *fakeProcessor) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.calls++
	f.amount, f.currency = amount, currency
	return f.secret, f.err
}

type testEnv struct {
	app    *fiber.App
	store  *countingStore
	tokens *services.TokenService
	pay    *fakeProcessor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	sqlite, err := repos.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close(context.Background()) })
	return newTestEnvWithStore(t, sqlite)
}

func newTestEnvWithStore(t *testing.T, backing repos.Store) *testEnv {
	t.Helper()
	cfg := config.Config{Currency: "usd", StoreTimeout: 5 * time.Second, TokenTTL: time.Hour}
	store := &countingStore{Store: backing}
	tokens := services.NewTokenService(testSecret, cfg.TokenTTL)
	pay := &fakeProcessor{secret: "pi_123_secret_456"}
	deps := handlers.NewDeps(store, cfg, tokens, pay)
	return &testEnv{app: server.New(deps), store: store, tokens: tokens, pay: pay}
}

func (e *testEnv) token(t *testing.T, payload map[string]any) string {
	t.Helper()
	tok, err := e.tokens.Issue(payload)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// do sends a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any, bearer string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatal(err)
			}
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d; body=%s", want, resp.StatusCode, body)
	}
}

type logEntry struct {
	Level    string         `json:"level"`
	Action   string         `json:"action"`
	Identity string         `json:"identity"`
	Claims   []string       `json:"claims"`
	Err      string         `json:"err"`
	Fields   map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the structured entries written while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

// newRequest sets the Authorization header verbatim.
func newRequest(method, path, authorization string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}
