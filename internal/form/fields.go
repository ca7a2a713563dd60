package form

import (
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/validation"
)

// FieldState is the transient state of one input.
type FieldState struct {
	Value   string
	Touched bool
	Error   *validation.FieldError
}

// ShowError reports whether the inline error should be rendered.
func (f FieldState) ShowError() bool {
	return f.Touched && f.Error != nil
}

// Data holds the state of every editable field.
type Data map[domain.Field]FieldState

// EmptyData returns untouched, empty state for all fields.
func EmptyData() Data {
	d := make(Data, len(domain.Fields()))
	for _, f := range domain.Fields() {
		d[f] = FieldState{}
	}
	return d
}

// Clone copies the map so callers cannot reach controller state.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// EmployeeToFormData loads a record into untouched field state.
func EmployeeToFormData(e domain.Employee) Data {
	d := make(Data, len(domain.Fields()))
	for _, f := range domain.Fields() {
		d[f] = FieldState{Value: e.Value(f)}
	}
	return d
}

// FormDataToEmployee builds a record from field values as entered.
func FormDataToEmployee(d Data, id int) domain.Employee {
	e := domain.Employee{ID: id}
	for _, f := range domain.Fields() {
		e = e.With(f, d[f].Value)
	}
	return e
}
