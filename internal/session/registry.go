package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// Registry maps session ids to workspaces and expires idle ones.
type Registry struct {
	deps   Deps
	ttl    time.Duration
	now    func() time.Time
	gauge  func(int)
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Workspace
}

// Option customises a Registry.
type Option func(*Registry)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithGauge receives the session count after every change.
func WithGauge(fn func(int)) Option {
	return func(r *Registry) {
		r.gauge = fn
	}
}

// NewRegistry creates an empty registry. Sessions idle for longer than ttl
// are removed by Sweep.
func NewRegistry(deps Deps, ttl time.Duration, opts ...Option) *Registry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	// Every workspace gets its own copy; the caller's slice is not retained.
	deps.Seed = append([]domain.Employee(nil), deps.Seed...)
	r := &Registry{
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		logger:   deps.Logger,
		sessions: make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	w, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	w.touch(r.now())
	return w, true
}

// Create starts a new session with the given interface language.
func (r *Registry) Create(lang string) *Workspace {
	id := uuid.NewString()
	w := newWorkspace(id, lang, r.deps, r.now())

	r.mu.Lock()
	r.sessions[id] = w
	n := len(r.sessions)
	r.mu.Unlock()

	r.report(n)
	r.logger.Debug("session created", zap.String("session_id", id), zap.String("language", w.Translator.CurrentLanguage()))
	return w
}

// Resolve returns the session for id, creating one when id is unknown or
// expired. The language is negotiated from acceptLanguage for new sessions.
func (r *Registry) Resolve(id, acceptLanguage string) (w *Workspace, created bool) {
	if id != "" {
		if w, ok := r.Get(id); ok {
			return w, false
		}
	}
	return r.Create(r.deps.Bundle.Negotiate(acceptLanguage)), true
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes and closes sessions idle for longer than the ttl. It
// returns how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*Workspace
	for id, w := range r.sessions {
		if w.LastSeen().Before(cutoff) {
			expired = append(expired, w)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, w := range expired {
		w.Close()
		r.logger.Debug("session expired", zap.String("session_id", w.ID))
	}
	if len(expired) > 0 {
		r.report(n)
	}
	return len(expired)
}

// Close closes every session.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Workspace)
	r.mu.Unlock()

	for _, w := range all {
		w.Close()
	}
	r.report(0)
}

func (r *Registry) report(n int) {
	if r.gauge != nil {
		r.gauge(n)
	}
}
