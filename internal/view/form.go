package view

import (
	"html/template"

	"github.com/spec-kit/employee-directory/internal/confirm"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/form"
	"github.com/spec-kit/employee-directory/internal/i18n"
)

// FieldModel is one labelled input with its inline error.
type FieldModel struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Error       string
	Placeholder string
	Options     []SelectOption
}

// Select reports whether the field renders as a dropdown.
func (f FieldModel) Select() bool {
	return f.Type == "select"
}

// FormModel feeds the "employee-form" template.
type FormModel struct {
	Title          string
	Notice         string
	NotFound       string
	Action         string
	Fields         []FieldModel
	SubmitLabel    string
	Submitting     bool
	SubmitDisabled bool
	ResetLabel     string
	CancelLabel    string
}

var inputTypes = map[domain.Field]string{
	domain.FieldDateOfEmployment: "date",
	domain.FieldDateOfBirth:      "date",
	domain.FieldPhone:            "tel",
	domain.FieldEmail:            "email",
	domain.FieldDepartment:       "select",
	domain.FieldPosition:         "select",
}

// FormShell renders the add/edit form of a controller.
type FormShell struct {
	r       *Renderer
	ctrl    *form.Controller
	tr      *i18n.Translator
	catalog domain.Catalog
}

// NewFormShell creates the form panel.
func NewFormShell(r *Renderer, ctrl *form.Controller, tr *i18n.Translator, catalog domain.Catalog) *FormShell {
	return &FormShell{r: r, ctrl: ctrl, tr: tr, catalog: catalog}
}

// Model builds the form from a controller snapshot.
func (s *FormShell) Model() FormModel {
	snap := s.ctrl.Snapshot()
	m := FormModel{
		Title:          s.tr.T("Employee.Form.AddTitle"),
		Action:         "/form",
		SubmitLabel:    s.tr.T("Common.Actions.Save"),
		Submitting:     snap.Submitting,
		SubmitDisabled: snap.Submitting || !snap.Valid,
		ResetLabel:     s.tr.T("Common.Actions.Reset"),
		CancelLabel:    s.tr.T("Common.Actions.Cancel"),
	}
	if snap.Submitting {
		m.SubmitLabel = s.tr.T("Common.Actions.Saving")
	}
	if snap.Mode == form.ModeEdit {
		m.Title = s.tr.T("Employee.Form.EditTitle")
		if snap.Found {
			name := form.FormDataToEmployee(snap.Data, 0).FullName()
			m.Notice = s.tr.T("Employee.Form.EditingNotice", map[string]any{"EmployeeName": name})
		} else {
			m.NotFound = s.tr.T("Employee.Form.NotFound")
		}
	}
	for _, f := range domain.Fields() {
		m.Fields = append(m.Fields, s.field(f, snap.Data[f]))
	}
	return m
}

// Field builds the model of a single input, used for partial updates.
func (s *FormShell) Field(f domain.Field) FieldModel {
	return s.field(f, s.ctrl.Snapshot().Data[f])
}

// Render returns the form HTML.
func (s *FormShell) Render() (template.HTML, error) {
	return s.r.Fragment("employee-form", s.Model())
}

// RenderField returns the HTML of one input with its error.
func (s *FormShell) RenderField(f domain.Field) (template.HTML, error) {
	return s.r.Fragment("form-field", s.Field(f))
}

func (s *FormShell) field(f domain.Field, st form.FieldState) FieldModel {
	m := FieldModel{
		Name:  string(f),
		Label: s.tr.Field(f),
		Type:  "text",
		Value: st.Value,
	}
	if t, ok := inputTypes[f]; ok {
		m.Type = t
	}
	if st.ShowError() {
		m.Error = s.tr.Error(st.Error)
	}
	if m.Select() {
		m.Placeholder = s.tr.T("Employee.Form.SelectPlaceholder")
		m.Options = selectOptions(s.catalog.Options(f), st.Value)
	}
	return m
}

// ConfirmModel feeds the "confirm-dialog" template.
type ConfirmModel struct {
	confirm.Prompt
	Action       string
	ProceedValue string
	CancelValue  string
	ReturnTo     string
}

// ConfirmDialog renders a confirmation prompt that posts its decision.
type ConfirmDialog struct {
	r *Renderer
}

// NewConfirmDialog creates the dialog component.
func NewConfirmDialog(r *Renderer) *ConfirmDialog {
	return &ConfirmDialog{r: r}
}

// Render returns the dialog HTML posting to action.
func (d *ConfirmDialog) Render(p confirm.Prompt, action, returnTo string) (template.HTML, error) {
	return d.r.Fragment("confirm-dialog", ConfirmModel{
		Prompt:       p,
		Action:       action,
		ProceedValue: confirm.Proceed,
		CancelValue:  confirm.Cancel,
		ReturnTo:     returnTo,
	})
}
