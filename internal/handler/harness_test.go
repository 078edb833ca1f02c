package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/handler"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/markup"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

const (
	sessionCookie = "hoidash_session"
	loginURL      = "/login"
)

// fakeHOI answers upstream calls from canned responses and records POST bodies.
type fakeHOI struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	posts  map[string][]map[string]interface{}
}

func newFakeHOI() *fakeHOI {
	return &fakeHOI{
		routes: make(map[string]http.HandlerFunc),
		posts:  make(map[string][]map[string]interface{}),
	}
}

func (f *fakeHOI) reply(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeHOI) posted(path string) []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.posts[path]...)
}

func (f *fakeHOI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		f.posts[r.URL.Path] = append(f.posts[r.URL.Path], payload)
		f.mu.Unlock()
	}

	f.mu.Lock()
	route, ok := f.routes[r.URL.Path]
	f.mu.Unlock()
	if ok {
		route(w, r)
		return
	}

	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte(`{"status":"ok","data":[]}`))
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

type appOptions struct {
	chatLimiter fiber.Handler
}

func newTestApp(t *testing.T, upstream *fakeHOI, opts ...func(*appOptions)) *fiber.App {
	t.Helper()

	options := appOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	client, err := hoiapi.New(hoiapi.Config{BaseURL: server.URL, HTTPClient: server.Client(), Logger: logger})
	require.NoError(t, err)

	validate := validator.New(validator.WithRequiredStructEnabled())
	metrics := service.NewMetricsService(client, "", logger)
	viewService := service.NewViewService(client, metrics, client.FormTemplateURL, logger)
	review, err := service.NewReviewService(client, client, metrics, validate, logger)
	require.NoError(t, err)
	chat := service.NewChatService(repository.NewMemoryChatLogRepository(time.Hour), client, markup.NewFormatter(), validate, logger)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	app := fiber.New()
	middleware.Register(app, middleware.Config{
		Logger:  &logger,
		Session: middleware.SessionConfig{Cookie: sessionCookie, UpstreamCookie: "session"},
	})

	handler.NewDashboardHandler(viewService, metrics, renderer, "HOI Dashboard", loginURL, logger).Register(app)
	handler.NewRecordHandler(review, viewService, renderer, loginURL, logger).Register(app)
	handler.NewChatHandler(chat, renderer, options.chatLimiter, loginURL, logger).Register(app)
	handler.NewMetricsHandler(metrics, "", logger).Register(app.Group("/api/v1"))

	return app
}

func withChatLimiter(limiter fiber.Handler) func(*appOptions) {
	return func(o *appOptions) {
		o.chatLimiter = limiter
	}
}

func perform(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func htmxRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("HX-Request", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req
}

func sessionFrom(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie {
			return &http.Cookie{Name: cookie.Name, Value: cookie.Value}
		}
	}
	t.Fatalf("response did not issue %s", sessionCookie)
	return nil
}
