package http

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const sessionCookieName = "profilo_session"

// session binds a browser to a platform token for the lifetime of the
// login.
type session struct {
	login     string
	token     string
	createdAt time.Time
}

// sessionStore keeps sessions in memory. Restarting the server logs
// everyone out, which is acceptable given the platform token can be
// re-obtained at any time.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
	}
}

// Create stores a new session and returns its opaque ID.
func (s *sessionStore) Create(login, token string) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	s.mu.Lock()
	s.sessions[id] = session{login: login, token: token, createdAt: time.Now()}
	s.mu.Unlock()
	return id, nil
}

// Get returns the session for id when it exists and has not expired.
func (s *sessionStore) Get(id string) (session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return session{}, false
	}
	if time.Since(sess.createdAt) > s.ttl {
		delete(s.sessions, id)
		return session{}, false
	}
	return sess, true
}

func (s *sessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Purge drops expired sessions and reports how many were removed.
func (s *sessionStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped int
	for id, sess := range s.sessions {
		if time.Since(sess.createdAt) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

func newSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func sessionCookie(id string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
