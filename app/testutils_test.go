package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/asistecare/siteapi/internal/authservice"
	"github.com/asistecare/siteapi/internal/blogservice"
	"github.com/asistecare/siteapi/internal/common"
	"github.com/asistecare/siteapi/internal/contactservice"
	"github.com/asistecare/siteapi/internal/reviewservice"
)

// stubProducer stands in for the message broker so handler tests do not need
// a running RabbitMQ.
type stubProducer struct {
	mu        sync.Mutex
	published [][]byte
}

func (p *stubProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, msg)
	return nil
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer := &stubProducer{}

	blogCache := common.NewCache(time.Minute, 5*time.Minute)
	reviewCache := common.NewCache(5*time.Minute, 10*time.Minute)

	cfg := &Config{
		Environment: "testing",
		JWTSecret:   "test-secret-key",
	}

	return &application{
		config:         cfg,
		logger:         logger,
		authService:    authservice.NewAuthService(db, cfg.JWTSecret),
		blogService:    blogservice.NewBlogService(db, blogCache),
		reviewService:  reviewservice.NewReviewService(db, producer, reviewCache, logger),
		contactService: contactservice.NewContactService(db, producer, logger),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &testServer{ts}
}

func (ts *testServer) do(t *testing.T, method, urlPath string, body []byte, cookie *http.Cookie) (int, http.Header, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+urlPath, reader)
	if err != nil {
		t.Fatal(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var data map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			t.Fatalf("could not unmarshal response body %q: %v", raw, err)
		}
	}

	return res.StatusCode, res.Header, data
}

func (ts *testServer) get(t *testing.T, urlPath string, cookie *http.Cookie) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodGet, urlPath, nil, cookie)
}

func (ts *testServer) post(t *testing.T, urlPath string, body []byte, cookie *http.Cookie) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodPost, urlPath, body, cookie)
}

func (ts *testServer) put(t *testing.T, urlPath string, body []byte, cookie *http.Cookie) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodPut, urlPath, body, cookie)
}

func (ts *testServer) patch(t *testing.T, urlPath string, body []byte, cookie *http.Cookie) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodPatch, urlPath, body, cookie)
}

func (ts *testServer) delete(t *testing.T, urlPath string, body []byte, cookie *http.Cookie) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodDelete, urlPath, body, cookie)
}

const (
	testAdminUsername = "admin"
	testAdminPassword = "secret123"
)

// loginTestAdmin provisions the administrator account and logs in through
// the HTTP surface, returning the session cookie.
func loginTestAdmin(t *testing.T, app *application, ts *testServer) *http.Cookie {
	t.Helper()

	_, err := app.authService.ProvisionAdmin(context.Background(), testAdminUsername, "admin@example.com", testAdminPassword, "Administrator")
	if err != nil {
		t.Fatal(err)
	}

	body := []byte(`{"username": "` + testAdminUsername + `", "password": "` + testAdminPassword + `"}`)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/auth", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", res.StatusCode)
	}

	for _, cookie := range res.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}

	t.Fatal("no session cookie in login response")
	return nil
}
