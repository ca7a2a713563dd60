// Package session keeps one isolated directory workspace per browser.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/events"
	"github.com/spec-kit/employee-directory/internal/form"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/listing"
	"github.com/spec-kit/employee-directory/internal/store"
	"github.com/spec-kit/employee-directory/internal/validation"
	"github.com/spec-kit/employee-directory/internal/view"
)

// Deps are the process-wide collaborators every workspace is built from.
type Deps struct {
	Seed           []domain.Employee
	Catalog        domain.Catalog
	EnforceCatalog bool
	Bundle         *i18n.Bundle
	Renderer       *view.Renderer
	Validator      *validation.Validator
	SubmitDelay    time.Duration
	ItemsPerPage   int
	Events         events.Dispatcher
	Recorder       store.DispatchRecorder
	Logger         *zap.Logger
	Now            func() time.Time
}

// Workspace is everything one browser session sees: its own store seeded
// from a private copy of the seed, the form controller, the selection, the
// page cursor, the translator and the bound view components.
type Workspace struct {
	ID         string
	Store      *store.Store
	Form       *form.Controller
	Translator *i18n.Translator

	Header         *view.Header
	EmployeeHeader *view.EmployeeHeader
	List           *view.EmployeeList
	FormShell      *view.FormShell
	Confirm        *view.ConfirmDialog

	mu        sync.Mutex
	selection *listing.Selection
	page      int
	perPage   int
	lastSeen  time.Time
	closers   []func()
	closed    bool
}

func newWorkspace(id, lang string, deps Deps, now time.Time) *Workspace {
	logger := deps.Logger.With(zap.String("session_id", id))
	storeOpts := []store.Option{store.WithLogger(logger)}
	if deps.Recorder != nil {
		storeOpts = append(storeOpts, store.WithRecorder(deps.Recorder))
	}
	s := store.New(deps.Seed, storeOpts...)

	formOpts := []form.Option{form.WithLogger(logger), form.WithDelay(deps.SubmitDelay)}
	if deps.EnforceCatalog {
		formOpts = append(formOpts, form.WithCatalog(deps.Catalog))
	}
	tr := deps.Bundle.NewTranslator(lang)

	perPage := deps.ItemsPerPage
	if perPage <= 0 {
		perPage = listing.DefaultItemsPerPage
	}
	ctrl := form.New(s, deps.Validator, formOpts...)
	w := &Workspace{
		ID:             id,
		Store:          s,
		Form:           ctrl,
		Translator:     tr,
		Header:         view.NewHeader(deps.Renderer, s, tr, deps.Bundle.Supported()),
		EmployeeHeader: view.NewEmployeeHeader(deps.Renderer, s, tr),
		List:           view.NewEmployeeList(deps.Renderer, s, tr, deps.Catalog),
		FormShell:      view.NewFormShell(deps.Renderer, ctrl, tr, deps.Catalog),
		Confirm:        view.NewConfirmDialog(deps.Renderer),
		selection:      listing.NewSelection(),
		page:           listing.DefaultPage,
		perPage:        perPage,
		lastSeen:       now,
	}

	// Selected ids of deleted employees are dropped.
	w.closers = append(w.closers, s.Subscribe(func(c store.Change) {
		if !store.EmployeesChanged(c.Prev, c.Next) {
			return
		}
		w.mu.Lock()
		w.selection.Prune(listing.IDs(c.Next.Employees))
		w.mu.Unlock()
	}))

	if deps.Events != nil {
		nowFn := deps.Now
		if nowFn == nil {
			nowFn = time.Now
		}
		w.closers = append(w.closers, s.Subscribe(func(c store.Change) {
			for _, ev := range events.FromChange(id, c, nowFn()) {
				if err := deps.Events.Publish(context.Background(), ev); err != nil {
					logger.Warn("event handler failed", zap.String("event_type", string(ev.Type)), zap.Error(err))
				}
			}
		}))
	}

	w.closers = append(w.closers, w.Header.Close, w.EmployeeHeader.Close)
	return w
}

// Cursor returns the current page and page size.
func (w *Workspace) Cursor() (page, perPage int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page, w.perPage
}

// MoveTo changes the cursor. When the page or page size actually changes,
// the selection is narrowed to the ids of the newly shown page.
func (w *Workspace) MoveTo(page, perPage int, pageIDs []int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if page == w.page && perPage == w.perPage {
		return
	}
	w.page, w.perPage = page, perPage
	w.selection.Prune(pageIDs)
}

// Selection returns a copy of the selected ids.
func (w *Workspace) Selection() *listing.Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return listing.NewSelection(w.selection.IDs()...)
}

// ToggleSelected flips one id.
func (w *Workspace) ToggleSelected(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.Toggle(id)
}

// ToggleAllSelected applies select-all to the ids of one page.
func (w *Workspace) ToggleAllSelected(pageIDs []int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.ToggleAll(pageIDs)
}

// ClearSelection empties the selection.
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.Clear()
}

// LastSeen is the time of the latest request of this session.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

// Close releases every store and translator subscription. It is safe to call
// more than once.
func (w *Workspace) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	closers := w.closers
	w.closers = nil
	w.mu.Unlock()

	for _, fn := range closers {
		fn()
	}
}
