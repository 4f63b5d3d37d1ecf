package auth

import (
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
)

// SessionStore holds the manager token and its expiry between requests.
type SessionStore interface {
	Get() (token string, expiresAt time.Time, ok bool)
	Set(token string, expiresAt time.Time) error
	Clear() error
}

// MemoryStore keeps one session in process.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() (string, time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.expiresAt, m.token != ""
}

func (m *MemoryStore) Set(token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.expiresAt = expiresAt
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
	return nil
}

const (
	sessionTokenKey  = "manager_token"
	sessionExpiryKey = "manager_expires_at"
)

// CookieStore keeps the session in the signed gin-contrib/sessions cookie.
type CookieStore struct {
	session sessions.Session
}

func NewCookieStore(s sessions.Session) *CookieStore {
	return &CookieStore{session: s}
}

func (c *CookieStore) Get() (string, time.Time, bool) {
	token, _ := c.session.Get(sessionTokenKey).(string)
	if token == "" {
		return "", time.Time{}, false
	}
	var expiresAt time.Time
	switch v := c.session.Get(sessionExpiryKey).(type) {
	case int64:
		expiresAt = time.UnixMilli(v)
	case int:
		expiresAt = time.UnixMilli(int64(v))
	}
	return token, expiresAt, true
}

func (c *CookieStore) Set(token string, expiresAt time.Time) error {
	c.session.Set(sessionTokenKey, token)
	c.session.Set(sessionExpiryKey, expiresAt.UnixMilli())
	return c.session.Save()
}

func (c *CookieStore) Clear() error {
	c.session.Delete(sessionTokenKey)
	c.session.Delete(sessionExpiryKey)
	return c.session.Save()
}
