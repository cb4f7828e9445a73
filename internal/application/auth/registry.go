package auth

import (
	"sync"
	"time"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain"
)

// Session sesión de un vendedor: la conexión al backend y su workspace de cotización.
type Session struct {
	ID            string
	Username      string
	Role          string
	UID           int
	BackendURL    string
	ServerVersion string
	Gateway       ports.SessionGateway
	Workspace     *quote.Workspace
	CreatedAt     time.Time
	lastSeen      time.Time
}

// Registry sesiones vivas en memoria. Una sesión inactiva más de ttl expira.
type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry registro vacío.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, now: time.Now, sessions: map[string]*Session{}}
}

// Put registra la sesión.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.lastSeen = r.now()
	r.sessions[s.ID] = s
}

// Get devuelve la sesión y renueva su actividad.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	now := r.now()
	if r.ttl > 0 && now.Sub(s.lastSeen) > r.ttl {
		delete(r.sessions, id)
		closeSession(s)
		return nil, domain.ErrSessionExpired
	}
	s.lastSeen = now
	return s, nil
}

// Delete cierra la sesión.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		closeSession(s)
	}
}

func closeSession(s *Session) {
	if s.Workspace != nil {
		s.Workspace.Close()
	}
}

// Sweep elimina las sesiones expiradas y devuelve cuántas quitó.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			closeSession(s)
			n++
		}
	}
	return n
}

// Len sesiones vivas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
