// Package store is the single authoritative container for employee records
// and navigation flags of one session.
package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// Change describes one committed transition.
type Change struct {
	Action Action
	Prev   State
	Next   State
}

// Listener observes committed transitions.
type Listener func(Change)

// DispatchRecorder receives one observation per dispatch.
type DispatchRecorder interface {
	RecordDispatch(action, result string)
}

type subscription struct {
	fn Listener
}

// Store holds State and applies actions to it one at a time.
//
// Listeners run synchronously inside Dispatch, in registration order, after
// the new state is visible through GetState. A listener must not call
// Dispatch on the same store.
type Store struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners []*subscription

	logger   *zap.Logger
	recorder DispatchRecorder
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used for reducer and listener failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRecorder sets the dispatch metrics sink.
func WithRecorder(r DispatchRecorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// New creates a store holding a copy of the seed list.
func New(seed []domain.Employee, opts ...Option) *Store {
	state := InitialState()
	state.Employees = make([]domain.Employee, len(seed))
	copy(state.Employees, seed)

	s := &Store{state: state, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns the current snapshot.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener. The returned function removes it and may be
// called any number of times.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l == sub {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Dispatch applies an action. It never panics: a failing reducer leaves the
// previous state in place and yields Rejected.
func (s *Store) Dispatch(action Action) Result {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	prev := s.GetState()
	next, result := s.reduce(action, prev)
	if s.recorder != nil {
		s.recorder.RecordDispatch(action.Name(), result.String())
	}
	if result != Applied {
		if result != Unchanged {
			s.logger.Debug("dispatch had no effect",
				zap.String("action", action.Name()),
				zap.Stringer("result", result))
		}
		return result
	}

	s.mu.Lock()
	s.state = next
	listeners := append([]*subscription(nil), s.listeners...)
	s.mu.Unlock()

	change := Change{Action: action, Prev: prev, Next: next}
	for _, l := range listeners {
		s.notify(l, change)
	}
	return result
}

func (s *Store) reduce(action Action, prev State) (next State, result Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reducer panicked",
				zap.String("action", action.Name()),
				zap.String("panic", fmt.Sprint(r)))
			next, result = prev, Rejected
		}
	}()
	return action.reduce(prev)
}

func (s *Store) notify(l *subscription, change Change) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store listener panicked",
				zap.String("action", change.Action.Name()),
				zap.String("panic", fmt.Sprint(r)))
		}
	}()
	l.fn(change)
}
