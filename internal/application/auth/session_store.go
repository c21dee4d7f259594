package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL vigencia de una sesión de administrador.
const DefaultSessionTTL = 20 * time.Minute

type session struct {
	adminID  string
	issuedAt time.Time
}

// SessionStore sesiones de administrador en memoria del proceso: token -> (admin, emisión).
// Las entradas vencidas se eliminan al consultarlas; el barrido periódico es opcional.
// Un administrador puede tener varias sesiones a la vez.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
	newToken func() string

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// SessionOption configura el SessionStore.
type SessionOption func(*SessionStore)

// WithSessionClock reemplaza el reloj (tests).
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

// WithTokenSource reemplaza el generador de tokens (tests).
func WithTokenSource(fn func() string) SessionOption {
	return func(s *SessionStore) { s.newToken = fn }
}

// NewSessionStore crea el almacén vacío. ttl <= 0 usa DefaultSessionTTL.
func NewSessionStore(ttl time.Duration, opts ...SessionOption) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
		newToken: randomToken,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomToken 32 caracteres hexadecimales de un UUID v4 (122 bits aleatorios).
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// TTL devuelve la vigencia configurada.
func (s *SessionStore) TTL() time.Duration { return s.ttl }

// Issue crea una sesión para el administrador y devuelve su token.
func (s *SessionStore) Issue(adminID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := s.newToken()
	for {
		if _, taken := s.sessions[token]; !taken {
			break
		}
		token = s.newToken()
	}
	s.sessions[token] = session{adminID: adminID, issuedAt: s.now()}
	return token
}

// Validate devuelve el administrador dueño del token si la sesión sigue vigente.
// Una sesión vencida se elimina y se trata como inexistente.
func (s *SessionStore) Validate(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", false
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, token)
		return "", false
	}
	return sess.adminID, true
}

// Revoke elimina la sesión (logout). Devuelve false si no existía.
func (s *SessionStore) Revoke(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	delete(s.sessions, token)
	return ok
}

// Sweep elimina todas las sesiones vencidas y devuelve cuántas se borraron.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for token, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Len número de sesiones almacenadas (incluye vencidas aún no barridas).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartJanitor lanza un barrido periódico hasta Close. Solo puede iniciarse una vez.
func (s *SessionStore) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Close detiene el barrido y vacía el almacén (apagado del servidor).
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	done := s.done
	s.sessions = make(map[string]session)
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *SessionStore) expired(sess session, now time.Time) bool {
	return !now.Before(sess.issuedAt.Add(s.ttl))
}
