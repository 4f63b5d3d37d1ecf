// Package auth is the manager session gate: a single shared secret unlocks
// a signed, expiring session.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTTL = 24 * time.Hour
	issuer     = "checkin-guide"
	subject    = "manager"
)

type Options struct {
	// Secret is the manager password, plain or as a bcrypt hash.
	Secret     string
	SigningKey []byte
	TTL        time.Duration
	Now        func() time.Time
}

type Gate struct {
	opts  Options
	store SessionStore
}

func NewGate(opts Options, store SessionStore) *Gate {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Gate{opts: opts, store: store}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func (g *Gate) matches(password string) bool {
	if password == "" || g.opts.Secret == "" {
		return false
	}
	if isBcryptHash(g.opts.Secret) {
		return bcrypt.CompareHashAndPassword([]byte(g.opts.Secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.opts.Secret), []byte(password)) == 1
}

// Login starts a session when password matches. On a mismatch any existing
// session is left as it was.
func (g *Gate) Login(password string) (bool, error) {
	if !g.matches(password) {
		return false, nil
	}
	now := g.opts.Now()
	expiresAt := now.Add(g.opts.TTL)
	token, err := g.sign(now, expiresAt)
	if err != nil {
		return false, err
	}
	if err := g.store.Set(token, expiresAt); err != nil {
		return false, err
	}
	return true, nil
}

// CheckAuth reports whether a valid session exists. An expired or forged
// session is cleared.
func (g *Gate) CheckAuth() bool {
	token, expiresAt, ok := g.store.Get()
	if !ok {
		return false
	}
	if !g.opts.Now().Before(expiresAt) {
		_ = g.store.Clear()
		return false
	}
	if err := g.verify(token); err != nil {
		_ = g.store.Clear()
		return false
	}
	return true
}

// ExpiresAt returns the expiry of the current session, if any.
func (g *Gate) ExpiresAt() (time.Time, bool) {
	_, expiresAt, ok := g.store.Get()
	return expiresAt, ok
}

func (g *Gate) Logout() error {
	return g.store.Clear()
}

func (g *Gate) sign(now, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.opts.SigningKey)
}

func (g *Gate) verify(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.opts.SigningKey, nil
	},
		jwt.WithTimeFunc(g.opts.Now),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
