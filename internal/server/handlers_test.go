package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, req models.DispatchRequest) models.DispatchResult {
	args := m.Called(ctx, req)
	return args.Get(0).(models.DispatchResult)
}

type panicDispatcher struct{}

func (panicDispatcher) Dispatch(context.Context, models.DispatchRequest) models.DispatchResult {
	panic("boom")
}

func newTestServer(t *testing.T, d *mockDispatcher, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	for _, fn := range mutate {
		fn(cfg)
	}
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return New(cfg, d, trans)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) mcpResponse {
	t.Helper()
	var resp mcpResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestMCP(t *testing.T) {
	t.Run("Should forward the request fields to the dispatcher", func(t *testing.T) {
		// arrange
		d := &mockDispatcher{}
		want := models.DispatchRequest{
			Input: "list issues",
			Repo:  "octo/app",
			Credentials: models.Credentials{
				GitHubToken: "gh-token",
				AIKey:       "ai-key",
			},
		}
		d.On("Dispatch", mock.Anything, want).
			Return(models.DispatchResult{Response: "📋 Open Issues:\n• Bug"}).Once()
		srv := newTestServer(t, d)

		// act
		rec := doRequest(t, srv, http.MethodPost, "/mcp",
			`{"input":"list issues","repo":"octo/app","github_token":"gh-token","gemini_key":"ai-key"}`)

		// assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "📋 Open Issues:\n• Bug", decodeResponse(t, rec).Response)
		d.AssertExpectations(t)
	})

	t.Run("Should apply the request timeout to the dispatch context", func(t *testing.T) {
		d := &mockDispatcher{}
		d.On("Dispatch", mock.MatchedBy(func(ctx context.Context) bool {
			deadline, ok := ctx.Deadline()
			return ok && time.Until(deadline) <= 5*time.Second
		}), mock.Anything).Return(models.DispatchResult{Response: "ok"}).Once()
		srv := newTestServer(t, d, func(c *config.Config) { c.RequestTimeoutSeconds = 5 })

		rec := doRequest(t, srv, http.MethodPost, "/mcp", `{"input":"hi","repo":"octo/app"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		d.AssertExpectations(t)
	})

	t.Run("Should answer 200 for domain failures", func(t *testing.T) {
		d := &mockDispatcher{}
		d.On("Dispatch", mock.Anything, mock.Anything).
			Return(models.DispatchResult{Response: "❌ Please provide a GitHub repository name.", Outcome: models.OutcomeRejected})
		srv := newTestServer(t, d)

		rec := doRequest(t, srv, http.MethodPost, "/mcp", `{"input":"list issues"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "❌ Please provide a GitHub repository name.", decodeResponse(t, rec).Response)
	})

	t.Run("Should reject a malformed body without dispatching", func(t *testing.T) {
		d := &mockDispatcher{}
		srv := newTestServer(t, d)

		rec := doRequest(t, srv, http.MethodPost, "/mcp", `{"input":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "❌ The request body must be a JSON object.", decodeResponse(t, rec).Response)
		d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("Should reject other methods", func(t *testing.T) {
		srv := newTestServer(t, &mockDispatcher{})

		rec := doRequest(t, srv, http.MethodGet, "/mcp", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("Should turn a panic into a response", func(t *testing.T) {
		trans, err := i18n.NewTranslations("en", "")
		require.NoError(t, err)
		srv := New(config.Default(), panicDispatcher{}, trans)

		req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(`{"input":"hi"}`))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "❌ Something went wrong while handling the request.", decodeResponse(t, rec).Response)
	})
}

func TestRateLimit(t *testing.T) {
	d := &mockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(models.DispatchResult{Response: "ok"}).Once()
	srv := newTestServer(t, d, func(c *config.Config) { c.RateLimitPerMinute = 1 })

	first := doRequest(t, srv, http.MethodPost, "/mcp", `{"input":"hi"}`)
	second := doRequest(t, srv, http.MethodPost, "/mcp", `{"input":"hi"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "❌ Too many requests, please try again in a moment.", decodeResponse(t, second).Response)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	d.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &mockDispatcher{}, func(c *config.Config) { c.RateLimitPerMinute = 1 })

	for i := 0; i < 3; i++ {
		rec := doRequest(t, srv, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, version.Version, resp.Version)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, &mockDispatcher{})

	t.Run("Should generate an id", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/health", "")

		assert.Len(t, rec.Header().Get(requestIDHeader), 36)
	})

	t.Run("Should echo the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
	})
}

func TestCORS(t *testing.T) {
	t.Run("Should answer preflight requests", func(t *testing.T) {
		srv := newTestServer(t, &mockDispatcher{})
		req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()

		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("Should only echo listed origins", func(t *testing.T) {
		srv := newTestServer(t, &mockDispatcher{}, func(c *config.Config) {
			c.AllowedOrigins = []string{"https://app.example.com"}
		})

		allowed := httptest.NewRequest(http.MethodGet, "/health", nil)
		allowed.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, allowed)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		denied := httptest.NewRequest(http.MethodGet, "/health", nil)
		denied.Header.Set("Origin", "https://evil.example.com")
		rec = httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, denied)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServe(t *testing.T) {
	srv := newTestServer(t, &mockDispatcher{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
