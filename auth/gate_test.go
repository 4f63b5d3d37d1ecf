package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestGate(secret string) (*Gate, *MemoryStore, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	g := NewGate(Options{Secret: secret, SigningKey: []byte("signing-key"), Now: clk.now}, store)
	return g, store, clk
}

func TestLoginAndCheck(t *testing.T) {
	g, store, clk := newTestGate("letmein")
	assert.False(t, g.CheckAuth())

	ok, err := g.Login("letmein")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, g.CheckAuth())

	_, expiresAt, present := store.Get()
	require.True(t, present)
	assert.Equal(t, clk.t.Add(24*time.Hour), expiresAt)
}

func TestSessionExpires(t *testing.T) {
	g, store, clk := newTestGate("letmein")
	ok, err := g.Login("letmein")
	require.NoError(t, err)
	require.True(t, ok)

	clk.t = clk.t.Add(23*time.Hour + 59*time.Minute)
	assert.True(t, g.CheckAuth())

	clk.t = clk.t.Add(2 * time.Minute)
	assert.False(t, g.CheckAuth())
	_, _, present := store.Get()
	assert.False(t, present)
}

func TestWrongPasswordKeepsSession(t *testing.T) {
	g, store, _ := newTestGate("letmein")
	ok, err := g.Login("letmein")
	require.NoError(t, err)
	require.True(t, ok)
	before, _, _ := store.Get()

	ok, err = g.Login("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	after, _, _ := store.Get()
	assert.Equal(t, before, after)
	assert.True(t, g.CheckAuth())

	ok, _ = g.Login("")
	assert.False(t, ok)
}

func TestForgedTokenIsCleared(t *testing.T) {
	g, store, clk := newTestGate("letmein")
	require.NoError(t, store.Set("not-a-jwt", clk.t.Add(time.Hour)))
	assert.False(t, g.CheckAuth())
	_, _, present := store.Get()
	assert.False(t, present)

	other := NewGate(Options{Secret: "letmein", SigningKey: []byte("other-key"), Now: clk.now}, NewMemoryStore())
	token, err := other.sign(clk.t, clk.t.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.Set(token, clk.t.Add(time.Hour)))
	assert.False(t, g.CheckAuth())
}

func TestBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	g, _, _ := newTestGate(string(hash))

	ok, err := g.Login("letmein")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = g.Login(string(hash))
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	g, _, _ := newTestGate("letmein")
	_, _ = g.Login("letmein")
	require.NoError(t, g.Logout())
	assert.False(t, g.CheckAuth())
}
