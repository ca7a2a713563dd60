// Package form drives the add/edit employee form: per-field validation,
// the submission lifecycle and the commit into the store.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/store"
	"github.com/spec-kit/employee-directory/internal/validation"
)

// DefaultSubmitDelay stands in for the asynchronous work of a submission.
const DefaultSubmitDelay = time.Second

var (
	// ErrInvalid is returned by Submit when at least one field fails.
	ErrInvalid = errors.New("form: invalid input")
	// ErrSubmitting is returned while a submission is in flight.
	ErrSubmitting = errors.New("form: submission in progress")
	// ErrRejected is returned when the store refused the new record.
	ErrRejected = errors.New("form: store rejected record")
)

// Mode tells whether the form creates or edits a record.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// WorkFunc is the asynchronous step run between validation and commit.
type WorkFunc func(ctx context.Context) error

// Delay returns a WorkFunc that waits d or until ctx is done.
func Delay(d time.Duration) WorkFunc {
	return func(ctx context.Context) error {
		if d <= 0 {
			return ctx.Err()
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Validation is the overall verdict used to enable submission.
type Validation struct {
	Valid  bool
	Errors map[domain.Field]*validation.FieldError
}

// Snapshot is a read-only copy of the controller for rendering.
type Snapshot struct {
	Mode       Mode
	EmployeeID *int
	Found      bool
	Data       Data
	Submitting bool
	Valid      bool
}

// Controller owns the form state of one session. Field state lives here
// until a record is committed; the store never sees partial records.
type Controller struct {
	store     *store.Store
	validator *validation.Validator
	catalog   *domain.Catalog
	work      WorkFunc
	logger    *zap.Logger

	mu         sync.Mutex
	mode       Mode
	employeeID *int
	source     *domain.Employee
	data       Data
	submitting bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithWork replaces the submission work step.
func WithWork(fn WorkFunc) Option {
	return func(c *Controller) {
		c.work = fn
	}
}

// WithDelay sets the artificial submission delay.
func WithDelay(d time.Duration) Option {
	return WithWork(Delay(d))
}

// WithCatalog restricts department and position to catalog values.
func WithCatalog(catalog domain.Catalog) Option {
	return func(c *Controller) {
		c.catalog = &catalog
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a controller in create mode.
func New(s *store.Store, v *validation.Validator, opts ...Option) *Controller {
	c := &Controller{
		store:     s,
		validator: v,
		work:      Delay(DefaultSubmitDelay),
		logger:    zap.NewNop(),
		data:      EmptyData(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount initialises the form. A nil id starts create mode; otherwise the
// fields are loaded from the matching record. An id that resolves to nothing
// is logged and leaves an empty edit session whose submit is a no-op.
func (c *Controller) Mount(employeeID *int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}

	c.source = nil
	c.data = EmptyData()
	if employeeID == nil {
		c.mode = ModeCreate
		c.employeeID = nil
		return nil
	}

	id := *employeeID
	c.mode = ModeEdit
	c.employeeID = &id
	e, ok := c.store.GetState().FindEmployee(id)
	if !ok {
		c.logger.Warn("employee to edit not found", zap.Int("employee_id", id))
		return nil
	}
	c.source = &e
	c.data = EmployeeToFormData(e)
	return nil
}

// Change records a new value for a field and revalidates only that field.
func (c *Controller) Change(f domain.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	c.data[f] = FieldState{Value: value, Touched: true, Error: c.fieldError(f, value)}
	return nil
}

// Blur marks a field touched and revalidates it even if unchanged.
func (c *Controller) Blur(f domain.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	st := c.data[f]
	st.Touched = true
	st.Error = c.fieldError(f, st.Value)
	c.data[f] = st
	return nil
}

// Validation evaluates every field regardless of touched state.
func (c *Controller) Validation() Validation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validate()
}

// CanSubmit reports whether the submit control is enabled.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.submitting && c.validate().Valid
}

// Snapshot copies the state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Mode:       c.mode,
		Found:      c.source != nil,
		Data:       c.data.Clone(),
		Submitting: c.submitting,
		Valid:      c.validate().Valid,
	}
	if c.employeeID != nil {
		id := *c.employeeID
		snap.EmployeeID = &id
	}
	return snap
}

// Submit validates, runs the work step and commits, blocking until done.
// In edit mode with a missing record the commit is a no-op and the returned
// employee is nil.
func (c *Controller) Submit(ctx context.Context) (*domain.Employee, error) {
	p, err := c.begin()
	if err != nil {
		return nil, err
	}
	return c.finish(ctx, p)
}

// Reset reloads the source record in edit mode and clears create mode.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	c.reset()
	return nil
}

// Cancel resets the form and returns the store to the list panel.
func (c *Controller) Cancel() error {
	if err := c.Reset(); err != nil {
		return err
	}
	c.store.Dispatch(store.ShowEmployeeList{})
	return nil
}

type pending struct {
	mode       Mode
	employeeID *int
	values     map[domain.Field]string
}

func (c *Controller) begin() (pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return pending{}, ErrSubmitting
	}

	for f, st := range c.data {
		st.Touched = true
		st.Error = c.fieldError(f, st.Value)
		c.data[f] = st
	}
	if v := c.validate(); !v.Valid {
		return pending{}, ErrInvalid
	}

	c.submitting = true
	values := make(map[domain.Field]string, len(c.data))
	for f, st := range c.data {
		values[f] = st.Value
	}
	p := pending{mode: c.mode, values: values}
	if c.employeeID != nil {
		id := *c.employeeID
		p.employeeID = &id
	}
	return p, nil
}

func (c *Controller) finish(ctx context.Context, p pending) (_ *domain.Employee, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("form: submission panicked: %v", r)
		}
		if err != nil {
			c.logger.Error("form submission failed",
				zap.Stringer("mode", p.mode),
				zap.Error(err))
		}
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if err := c.work(ctx); err != nil {
		return nil, fmt.Errorf("form: submission work: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("form: submission cancelled: %w", err)
	}

	var committed *domain.Employee
	switch p.mode {
	case ModeCreate:
		e := employeeFromValues(p.values, store.GenerateID(c.store.GetState().Employees))
		if res := c.store.Dispatch(store.AddEmployee{Employee: e}); res != store.Applied {
			return nil, fmt.Errorf("%w: %s", ErrRejected, res)
		}
		committed = &e
		c.mu.Lock()
		c.data = EmptyData()
		c.mu.Unlock()
	case ModeEdit:
		if p.employeeID == nil {
			break
		}
		e := employeeFromValues(p.values, *p.employeeID)
		switch res := c.store.Dispatch(store.UpdateEmployee{Employee: e}); res {
		case store.Applied, store.Unchanged:
			committed = &e
			c.mu.Lock()
			c.source = &e
			c.mu.Unlock()
		case store.NotFound:
			c.logger.Warn("edited employee no longer exists", zap.Int("employee_id", e.ID))
		default:
			return nil, fmt.Errorf("%w: %s", ErrRejected, res)
		}
	}

	c.store.Dispatch(store.ShowEmployeeList{})
	return committed, nil
}

func (c *Controller) reset() {
	if c.mode == ModeEdit && c.source != nil {
		c.data = EmployeeToFormData(*c.source)
		return
	}
	c.data = EmptyData()
}

func (c *Controller) validate() Validation {
	values := make(map[domain.Field]string, len(c.data))
	for f, st := range c.data {
		values[f] = st.Value
	}
	v := Validation{Valid: true, Errors: c.validator.ValidateAll(values)}
	for _, f := range domain.Fields() {
		if strings.TrimSpace(values[f]) == "" {
			v.Valid = false
		}
		if _, failed := v.Errors[f]; failed || c.catalog == nil {
			continue
		}
		if err := validation.ValidateCatalogField(*c.catalog, f, values[f]); err != nil {
			v.Errors[f] = err
		}
	}
	if len(v.Errors) > 0 {
		v.Valid = false
	}
	return v
}

func (c *Controller) fieldError(f domain.Field, value string) *validation.FieldError {
	if err := c.validator.Validate(f, value); err != nil {
		return err
	}
	if c.catalog == nil {
		return nil
	}
	return validation.ValidateCatalogField(*c.catalog, f, value)
}

func employeeFromValues(values map[domain.Field]string, id int) domain.Employee {
	e := domain.Employee{ID: id}
	for f, v := range values {
		e = e.With(f, v)
	}
	return e
}
