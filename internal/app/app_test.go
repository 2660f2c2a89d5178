package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edutech_backend/internal/config"
	"edutech_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: "test"},
		Database: config.DatabaseConfig{Driver: util.DriverMemory},
		JWT:      config.JWTConfig{Secret: "app-test-secret", ExpireTime: time.Hour},
		Events:   config.EventsConfig{Exchange: "quiz.events"},
		Quiz:     config.QuizConfig{MaxPerTrack: 50},
		Admin:    config.AdminConfig{Username: "admin", Password: "admin123"},
	}
	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func call(t *testing.T, a *App, method, path, token, body string) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var resp util.Response
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func token(t *testing.T, resp util.Response) string {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	tok, _ := data["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestApp_QuizRoundTrip(t *testing.T) {
	a := newTestApp(t)

	w, _ := call(t, a, http.MethodPost, "/api/register", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := call(t, a, http.MethodPost, "/api/login", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	tok := token(t, resp)

	w, resp = call(t, a, http.MethodPost, "/api/quiz", tok,
		`{"answers":{"sql_q1":"yes","sql_q2":"yes"},"selectedInterests":["Data Science"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(50), data["maxPerTrack"])
	assert.Contains(t, data["message"], "Top fit: SQL.")

	w, resp = call(t, a, http.MethodGet, "/api/my-results", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	history := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), history["total"])
	first := history["list"].([]any)[0].(map[string]any)
	assert.Equal(t, "Data Science", first["subjectFocus"])
}

func TestApp_DefaultAdminBootstrapped(t *testing.T) {
	a := newTestApp(t)

	w, resp := call(t, a, http.MethodPost, "/api/admin/login", "", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	tok := token(t, resp)

	w, _ = call(t, a, http.MethodGet, "/api/admin/users", tok, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, a, http.MethodGet, "/api/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApp_ApplyConfigUpdatesMaxPerTrack(t *testing.T) {
	a := newTestApp(t)

	next := *a.Config
	next.Quiz.MaxPerTrack = 80
	a.applyConfig(&next)

	assert.Equal(t, 80, a.services.quiz.MaxPerTrack())
}

func TestApp_Diagnostics(t *testing.T) {
	a := newTestApp(t)

	w, resp := call(t, a, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Message)

	w, _ = call(t, a, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestNewApp_UnknownDriver(t *testing.T) {
	_, err := NewApp(&config.Config{Server: config.ServerConfig{Mode: "test"}, Database: config.DatabaseConfig{Driver: "oracle"}})
	assert.Error(t, err)
}
