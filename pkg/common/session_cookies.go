package common

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/matst80/slask-cars/pkg/types"
)

const sessionCookieName = "sid"

const sessionMaxAge = 30 * 24 * time.Hour

// Sessions issues the sid cookie. With a secret the session id is wrapped in
// an HS256 token so clients cannot pick another session id.
type Sessions struct {
	secret []byte
	now    func() time.Time
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret), now: time.Now}
}

func generateSessionId() string {
	return uuid.New().String()
}

func (s *Sessions) encode(sessionId string) (string, error) {
	if len(s.secret) == 0 {
		return sessionId, nil
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionMaxAge)),
	})
	return token.SignedString(s.secret)
}

func (s *Sessions) decode(value string) (string, error) {
	if len(s.secret) == 0 {
		id, err := uuid.Parse(value)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
	claims := &jwt.RegisteredClaims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if _, err = uuid.Parse(claims.ID); err != nil {
		return "", errors.New("session token without session id")
	}
	return claims.ID, nil
}

func (s *Sessions) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	value, err := s.encode(sessionId)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Domain:   strings.TrimPrefix(hostWithoutPort(r.Host), "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   int(sessionMaxAge.Seconds()),
		Path:     "/",
	})
}

// HandleSessionCookie returns the session of the request, starting a new one
// when the cookie is missing or does not verify.
func (s *Sessions) HandleSessionCookie(trk types.Tracking, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if sessionId, err := s.decode(c.Value); err == nil {
			return sessionId
		}
	}
	sessionId := generateSessionId()
	if trk != nil {
		go trk.TrackSession(sessionId, r.Clone(r.Context()))
	}
	s.setSessionCookie(w, r, sessionId)
	return sessionId
}

func hostWithoutPort(host string) string {
	if i := strings.LastIndexByte(host, ':'); i > 0 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}
