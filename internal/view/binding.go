package view

import (
	"sync"

	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/store"
)

// ChangeFilter decides whether a store transition concerns a component.
type ChangeFilter func(prev, next store.State) bool

// Binding ties a component to the store and the translator from creation
// until Close. It starts dirty and is marked dirty again whenever the
// watched part of the state is replaced or the language changes.
type Binding struct {
	mu    sync.Mutex
	dirty bool

	offStore func()
	offLang  func()
	once     sync.Once
}

// Bind subscribes immediately. onChange, if not nil, runs after the binding
// is marked dirty, inside the store listener.
func Bind(s *store.Store, tr *i18n.Translator, watch ChangeFilter, onChange func()) *Binding {
	b := &Binding{dirty: true}
	b.offStore = s.Subscribe(func(c store.Change) {
		if watch != nil && !watch(c.Prev, c.Next) {
			return
		}
		b.invalidate()
		if onChange != nil {
			onChange()
		}
	})
	if tr != nil {
		b.offLang = tr.OnLanguageChanged(func(string) {
			b.invalidate()
		})
	}
	return b
}

// Dirty reports whether the component must render again.
func (b *Binding) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// MarkClean records a completed render.
func (b *Binding) MarkClean() {
	b.mu.Lock()
	b.dirty = false
	b.mu.Unlock()
}

// Close releases both subscriptions. It is safe to call more than once.
func (b *Binding) Close() {
	b.once.Do(func() {
		b.offStore()
		if b.offLang != nil {
			b.offLang()
		}
	})
}

func (b *Binding) invalidate() {
	b.mu.Lock()
	b.dirty = true
	b.mu.Unlock()
}

// WatchNavigation fires on view mode, panel or edit target changes.
func WatchNavigation(prev, next store.State) bool {
	return store.NavigationChanged(prev, next)
}

// WatchEmployees fires when the employee list is replaced.
func WatchEmployees(prev, next store.State) bool {
	return store.EmployeesChanged(prev, next)
}
