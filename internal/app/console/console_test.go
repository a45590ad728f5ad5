package console

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pandda-console/internal/config"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Env:       "local",
		Storage:   config.Storage{Driver: "memory", Key: "pandda_mockdb_v1", SessionKey: "pandda_session_v1"},
		JWTToken:  config.JWTToken{JWTSecretKey: "secret", TokenTTL: time.Hour},
		Accounts:  config.DefaultAccounts(),
		Reminder:  config.Reminder{Enabled: true, Schedule: "@every 1h", Window: 24 * time.Hour},
		RateLimit: config.RateLimit{RPS: 1000, Burst: 1000},
	}
	app, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	require.NoError(t, err)
	require.NotNil(t, app.reminder)
	t.Cleanup(app.close)
	return app.server.Handler
}

func call(t *testing.T, h http.Handler, method, target, token, body string) (int, result.Result[json.RawMessage]) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var res result.Result[json.RawMessage]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res), rr.Body.String())
	return rr.Code, res
}

func loginAs(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	code, res := call(t, h, http.MethodPost, "/api/v1/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, code)
	var sess models.Session
	require.NoError(t, json.Unmarshal(res.Data, &sess))
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func TestAPI_AccessPolicy(t *testing.T) {
	h := newTestApp(t)

	code, _ := call(t, h, http.MethodGet, "/api/v1/clients", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token := loginAs(t, h, "user@pandda.test", "user")

	code, res := call(t, h, http.MethodGet, "/api/v1/clients", token, "")
	require.Equal(t, http.StatusOK, code)
	var clients []models.Client
	require.NoError(t, json.Unmarshal(res.Data, &clients))
	assert.Len(t, clients, 2)

	code, _ = call(t, h, http.MethodPost, "/api/v1/clients", token, `{"name":"Gamma","email":"g@gamma.test"}`)
	assert.Equal(t, http.StatusCreated, code, "обычный пользователь создаёт клиентов")

	code, res = call(t, h, http.MethodPost, "/api/v1/plans", token, `{"name":"Basic","price":10}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.True(t, res.Is(result.CodeForbidden))

	code, _ = call(t, h, http.MethodDelete, "/api/v1/clients/c-1", token, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestAPI_AdminFlow(t *testing.T) {
	h := newTestApp(t)
	token := loginAs(t, h, "admin@pandda.test", "admin")

	code, res := call(t, h, http.MethodPost, "/api/v1/subscriptions", token, `{"clientId":"c-1","planId":"p-1","price":10}`)
	require.Equal(t, http.StatusCreated, code)
	var sub models.Subscription
	require.NoError(t, json.Unmarshal(res.Data, &sub))

	code, res = call(t, h, http.MethodPost, "/api/v1/subscriptions/"+sub.ID+"/renew", token, `{"price":15}`)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(res.Data, &sub))
	assert.Equal(t, 1, sub.Renewals)
	assert.Equal(t, 15.0, sub.Price)

	code, _ = call(t, h, http.MethodPost, "/api/v1/users", token, `{"email":"ops@pandda.test","role":"common"}`)
	assert.Equal(t, http.StatusCreated, code)

	code, _ = call(t, h, http.MethodDelete, "/api/v1/clients/c-2", token, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestAPI_SessionAndLogout(t *testing.T) {
	h := newTestApp(t)
	first := loginAs(t, h, "user@pandda.test", "user")
	second := loginAs(t, h, "admin@pandda.test", "admin")

	code, _ := call(t, h, http.MethodGet, "/api/v1/clients", first, "")
	assert.Equal(t, http.StatusUnauthorized, code, "новый вход заменяет сессию процесса")

	code, res := call(t, h, http.MethodGet, "/api/v1/session", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(res.Data), "admin@pandda.test")

	code, _ = call(t, h, http.MethodPost, "/api/v1/logout", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, h, http.MethodGet, "/api/v1/clients", second, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPublicEndpoints(t *testing.T) {
	h := newTestApp(t)

	code, _ := call(t, h, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, code)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/console/clients", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Sign in required")
}
