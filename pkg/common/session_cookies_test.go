package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(t *testing.T, s *Sessions) (string, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://cars.example.com/api/view", nil)
	sessionId := s.HandleSessionCookie(nil, w, r)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return sessionId, cookies[0]
}

func TestSignedSessionCookie(t *testing.T) {
	s := NewSessions("secret")
	sessionId, cookie := issue(t, s)
	_, err := uuid.Parse(sessionId)
	require.NoError(t, err)
	assert.NotEqual(t, sessionId, cookie.Value)
	assert.Equal(t, "cars.example.com", cookie.Domain)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	r.AddCookie(cookie)
	assert.Equal(t, sessionId, s.HandleSessionCookie(nil, w, r))
	assert.Empty(t, w.Result().Cookies(), "a valid cookie is not reissued")
}

func TestForgedSessionCookieStartsNewSession(t *testing.T) {
	_, cookie := issue(t, NewSessions("other secret"))
	s := NewSessions("secret")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	r.AddCookie(cookie)
	s.HandleSessionCookie(nil, w, r)
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestUnsignedSessionCookie(t *testing.T) {
	s := NewSessions("")
	sessionId, cookie := issue(t, s)
	assert.Equal(t, sessionId, cookie.Value)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "12345"})
	assert.NotEqual(t, "12345", s.HandleSessionCookie(nil, w, r))
}
