package dto

import (
	"net/url"
	"strconv"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// ListQuery is the list cursor and filter carried in the URL.
type ListQuery struct {
	Page       int    `query:"page"`
	PerPage    int    `query:"perPage"`
	Q          string `query:"q"`
	Department string `query:"department"`
	Position   string `query:"position"`
}

// ListQueryFromValues decodes a query string, ignoring malformed numbers.
func ListQueryFromValues(v url.Values) ListQuery {
	q := ListQuery{
		Q:          v.Get("q"),
		Department: v.Get("department"),
		Position:   v.Get("position"),
	}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.PerPage, _ = strconv.Atoi(v.Get("perPage"))
	return q
}

// EmployeeForm is the submitted add/edit form.
type EmployeeForm struct {
	FirstName        string `form:"firstName"`
	LastName         string `form:"lastName"`
	DateOfEmployment string `form:"dateOfEmployment"`
	DateOfBirth      string `form:"dateOfBirth"`
	Phone            string `form:"phone"`
	Email            string `form:"email"`
	Department       string `form:"department"`
	Position         string `form:"position"`
}

// Values returns the raw value of every field.
func (f EmployeeForm) Values() map[domain.Field]string {
	return map[domain.Field]string{
		domain.FieldFirstName:        f.FirstName,
		domain.FieldLastName:         f.LastName,
		domain.FieldDateOfEmployment: f.DateOfEmployment,
		domain.FieldDateOfBirth:      f.DateOfBirth,
		domain.FieldPhone:            f.Phone,
		domain.FieldEmail:            f.Email,
		domain.FieldDepartment:       f.Department,
		domain.FieldPosition:         f.Position,
	}
}

// FieldEventRequest is one keystroke or blur sent by the form script.
type FieldEventRequest struct {
	Field string `form:"field"`
	Value string `form:"value"`
	// Event is "change" or "blur".
	Event string `form:"event"`
}

// DecisionRequest answers a confirmation prompt.
type DecisionRequest struct {
	Decision string `form:"decision"`
	ReturnTo string `form:"returnTo"`
}

// LanguageRequest switches the interface language.
type LanguageRequest struct {
	Language string `form:"language"`
	ReturnTo string `form:"returnTo"`
}

// ViewModeRequest selects list or grid.
type ViewModeRequest struct {
	Mode     string `form:"mode"`
	ReturnTo string `form:"returnTo"`
}

// ReturnRequest carries only the page to go back to.
type ReturnRequest struct {
	ReturnTo string `form:"returnTo"`
}
