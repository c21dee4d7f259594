package auth_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/tienda-api/internal/application/auth"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock reloj manual seguro para concurrencia.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const ttl = 20 * time.Minute

func TestSessionStore_ValidoAntesDelTTL(t *testing.T) {
	clock := newFakeClock()
	store := auth.NewSessionStore(ttl, auth.WithSessionClock(clock.Now))
	defer store.Close()

	token := store.Issue("admin")
	require.NotEmpty(t, token)

	clock.Advance(time.Second)
	adminID, ok := store.Validate(token)
	assert.True(t, ok)
	assert.Equal(t, "admin", adminID)

	clock.Advance(ttl - 2*time.Second)
	_, ok = store.Validate(token)
	assert.True(t, ok, "la sesión sigue vigente un instante antes del TTL")
}

func TestSessionStore_ExpiraDespuesDelTTL(t *testing.T) {
	clock := newFakeClock()
	store := auth.NewSessionStore(ttl, auth.WithSessionClock(clock.Now))
	defer store.Close()

	token := store.Issue("admin")
	clock.Advance(ttl + time.Second)

	adminID, ok := store.Validate(token)
	assert.False(t, ok)
	assert.Empty(t, adminID)
	assert.Equal(t, 0, store.Len(), "la entrada vencida se elimina al consultarla")
}

func TestSessionStore_TokenDesconocidoOVacio(t *testing.T) {
	store := auth.NewSessionStore(ttl)
	defer store.Close()

	_, ok := store.Validate("")
	assert.False(t, ok)
	_, ok = store.Validate("no-existe")
	assert.False(t, ok)
}

func TestSessionStore_VariasSesionesPorAdmin(t *testing.T) {
	store := auth.NewSessionStore(ttl)
	defer store.Close()

	t1 := store.Issue("admin")
	t2 := store.Issue("admin")
	assert.NotEqual(t, t1, t2)

	for _, tok := range []string{t1, t2} {
		id, ok := store.Validate(tok)
		assert.True(t, ok)
		assert.Equal(t, "admin", id)
	}
}

func TestSessionStore_TokenColisionaSeRegenera(t *testing.T) {
	tokens := []string{"AAAA", "AAAA", "BBBB"}
	i := 0
	store := auth.NewSessionStore(ttl, auth.WithTokenSource(func() string {
		tok := tokens[i]
		i++
		return tok
	}))
	defer store.Close()

	assert.Equal(t, "AAAA", store.Issue("a1"))
	assert.Equal(t, "BBBB", store.Issue("a2"))
	id, _ := store.Validate("AAAA")
	assert.Equal(t, "a1", id, "una colisión no debe sobrescribir la sesión existente")
}

func TestSessionStore_Revoke(t *testing.T) {
	store := auth.NewSessionStore(ttl)
	defer store.Close()

	token := store.Issue("admin")
	assert.True(t, store.Revoke(token))
	assert.False(t, store.Revoke(token))
	_, ok := store.Validate(token)
	assert.False(t, ok)
}

func TestSessionStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	store := auth.NewSessionStore(ttl, auth.WithSessionClock(clock.Now))
	defer store.Close()

	store.Issue("viejo-1")
	store.Issue("viejo-2")
	clock.Advance(ttl)
	fresh := store.Issue("nuevo")

	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 1, store.Len())
	_, ok := store.Validate(fresh)
	assert.True(t, ok)
}

func TestSessionStore_JanitorBarreYSeDetiene(t *testing.T) {
	clock := newFakeClock()
	store := auth.NewSessionStore(ttl, auth.WithSessionClock(clock.Now))

	store.Issue("admin")
	clock.Advance(ttl + time.Minute)
	store.StartJanitor(5 * time.Millisecond)
	store.StartJanitor(5 * time.Millisecond) // segunda llamada sin efecto

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	store.Close()
	store.Close() // idempotente
}

func TestSessionStore_CloseVacia(t *testing.T) {
	store := auth.NewSessionStore(ttl)
	token := store.Issue("admin")
	store.Close()

	_, ok := store.Validate(token)
	assert.False(t, ok)
}

func TestSessionStore_Concurrente(t *testing.T) {
	store := auth.NewSessionStore(ttl)
	defer store.Close()

	const n = 200
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = store.Issue(fmt.Sprintf("admin-%d", i%5))
			_, _ = store.Validate(tokens[i])
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, tok := range tokens {
		assert.False(t, seen[tok], "token duplicado")
		seen[tok] = true
		id, ok := store.Validate(tok)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("admin-%d", i%5), id)
	}
}
