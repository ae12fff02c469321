package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/locallens/contact-backend/internal/handler"
	"github.com/locallens/contact-backend/internal/lib/email"
	"github.com/locallens/contact-backend/internal/model"
	"github.com/locallens/contact-backend/internal/router"
	"github.com/locallens/contact-backend/internal/server"
	"github.com/locallens/contact-backend/internal/service"
)

type recordingTransport struct {
	mu   sync.Mutex
	sent []email.Message
}

func (r *recordingTransport) Send(_ context.Context, messages ...email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, messages...)
	return nil
}

// safeBuffer lets the test read logs written by request goroutines.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func credentialedMail() config.MailConfig {
	return config.MailConfig{
		Provider:  config.ProviderSMTP,
		Host:      "127.0.0.1",
		Port:      587,
		User:      "owner@example.com",
		Password:  "secret",
		Recipient: "owner@example.com",
	}
}

// newTestRouter wires the full stack. A nil transport keeps the one
// built from the mail config.
func newTestRouter(t *testing.T, mail config.MailConfig, transport email.Transport) (*echo.Echo, *safeBuffer) {
	t.Helper()
	return newTestRouterWithConfig(t, testConfig(mail), transport)
}

func testConfig(mail config.MailConfig) *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:           "5000",
			ReadTimeout:    10,
			WriteTimeout:   60,
			IdleTimeout:    120,
			AllowedOrigins: "https://locallens.homes",
		},
		Mail:          mail,
		Observability: config.DefaultObservabilityConfig(),
	}
}

func newTestRouterWithConfig(t *testing.T, cfg *config.Config, transport email.Transport) (*echo.Echo, *safeBuffer) {
	t.Helper()

	logs := &safeBuffer{}
	logger := zerolog.New(logs).Level(zerolog.InfoLevel)

	srv, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	if transport != nil {
		srv.Email = email.NewClient(cfg, transport, &logger)
	}

	services, err := service.NewServices(srv)
	require.NoError(t, err)

	return router.NewRouter(srv, handler.NewHandlers(srv, services)), logs
}

func postJSON(t *testing.T, e *echo.Echo, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func countLevel(lines []string, level string) int {
	n := 0
	for _, line := range lines {
		if strings.Contains(line, `"level":"`+level+`"`) {
			n++
		}
	}
	return n
}

var ann = map[string]string{"name": "Ann", "email": "ann@example.com", "message": "Hello"}

func TestSubmitSendsEmails(t *testing.T) {
	transport := &recordingTransport{}
	e, logs := newTestRouter(t, credentialedMail(), transport)

	rec := postJSON(t, e, ann)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SubmitEnquiryResponse{
		OK:        true,
		EmailSent: true,
		Message:   model.SubmittedMessage,
	}, decode[model.SubmitEnquiryResponse](t, rec))

	require.Len(t, transport.sent, 2)
	assert.Equal(t, "New Enquiry from Ann", transport.sent[0].Subject)
	assert.Equal(t, "ann@example.com", transport.sent[1].To)

	assert.Contains(t, strings.Join(logs.Lines(), "\n"), "Submission: Ann <ann@example.com> – Hello")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSubmitValidationFailure(t *testing.T) {
	transport := &recordingTransport{}
	e, logs := newTestRouter(t, credentialedMail(), transport)

	rec := postJSON(t, e, map[string]string{"name": "", "email": "bad", "message": ""})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, map[string]any{
		"ok": false,
		"errors": map[string]any{
			"name":    "Name is required.",
			"email":   "A valid email address is required.",
			"message": "Message is required.",
		},
	}, body)

	assert.Empty(t, transport.sent)
	assert.Zero(t, countLevel(logs.Lines(), "error"), "validation failures are not errors")
	assert.Equal(t, 1, countLevel(logs.Lines(), "warn"))
	assert.NotContains(t, strings.Join(logs.Lines(), "\n"), "Submission:")
}

func TestSubmitWithoutCredentials(t *testing.T) {
	mail := credentialedMail()
	mail.Password = ""
	transport := &recordingTransport{}
	e, logs := newTestRouter(t, mail, transport)

	rec := postJSON(t, e, ann)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.SubmitEnquiryResponse](t, rec)
	assert.True(t, resp.OK)
	assert.False(t, resp.EmailSent)
	assert.Empty(t, transport.sent)
	assert.Contains(t, strings.Join(logs.Lines(), "\n"), "email credentials not configured")
}

func TestSubmitTransportFailure(t *testing.T) {
	// Grab a free port and close it so the dial is refused.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	mail := credentialedMail()
	mail.Port = l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	e, logs := newTestRouter(t, mail, nil)

	rec := postJSON(t, e, ann)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.SubmitEnquiryResponse](t, rec)
	assert.True(t, resp.OK)
	assert.False(t, resp.EmailSent)
	assert.Equal(t, model.SubmittedMessage, resp.Message)

	lines := logs.Lines()
	require.Equal(t, 1, countLevel(lines, "error"))
	for _, line := range lines {
		if strings.Contains(line, `"level":"error"`) {
			assert.Contains(t, line, "email send error")
			assert.Contains(t, line, "smtp dial")
		}
	}
}

func TestSubmitFormEncoded(t *testing.T) {
	transport := &recordingTransport{}
	e, _ := newTestRouter(t, credentialedMail(), transport)

	form := url.Values{
		"name":        {"  Ann  "},
		"email":       {"ann@example.com"},
		"message":     {"Hello"},
		"phone":       {"+977 1"},
		"travel_date": {"2025-04-12"},
		"trip":        {"Poon Hill"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, transport.sent, 2)
	assert.Equal(t, "New Enquiry from Ann", transport.sent[0].Subject)
	assert.Contains(t, transport.sent[0].Body, "Tour:         Poon Hill\n")
	assert.Contains(t, transport.sent[0].Body, "Travel Date:  2025-04-12\n")
}

func TestSubmitUnreadableBodyIsValidatedAsEmpty(t *testing.T) {
	e, _ := newTestRouter(t, credentialedMail(), &recordingTransport{})

	for name, req := range map[string]*http.Request{
		"malformed json": func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"name":`))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			return r
		}(),
		"no body": httptest.NewRequest(http.MethodPost, "/submit", nil),
		"plain text": func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("hello"))
			r.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
			return r
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[map[string]any](t, rec)
			assert.Len(t, body["errors"], 3)
		})
	}
}

func TestHealth(t *testing.T) {
	// Mail is deliberately unusable; health does not depend on it.
	e, _ := newTestRouter(t, config.MailConfig{Provider: config.ProviderSMTP, Host: "192.0.2.1", Port: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t, credentialedMail(), &recordingTransport{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"code":"NOT_FOUND","error":"Route not found"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	e, _ := newTestRouter(t, credentialedMail(), &recordingTransport{})

	req := httptest.NewRequest(http.MethodOptions, "/submit", nil)
	req.Header.Set(echo.HeaderOrigin, "https://locallens.homes")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://locallens.homes", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestConcurrentSubmissions(t *testing.T) {
	transport := &recordingTransport{}
	e, _ := newTestRouter(t, credentialedMail(), transport)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			payload, _ := json.Marshal(ann)
			req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(payload))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				errs <- errors.New(rec.Body.String())
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Len(t, transport.sent, 2*n)
}

func TestDebugMode(t *testing.T) {
	e, _ := newTestRouter(t, credentialedMail(), &recordingTransport{})
	assert.False(t, e.Debug)

	cfg := testConfig(credentialedMail())
	cfg.Server.Debug = "true"

	e, logs := newTestRouterWithConfig(t, cfg, &recordingTransport{})
	assert.True(t, e.Debug)

	lines := logs.Lines()
	assert.Equal(t, 1, countLevel(lines, "warn"))
	assert.Contains(t, strings.Join(lines, "\n"), "debug mode enabled, do not use in production")
}
