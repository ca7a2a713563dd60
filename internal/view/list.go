package view

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/listing"
	"github.com/spec-kit/employee-directory/internal/store"
)

// PerPageChoices are the page sizes offered by the pagination bar.
var PerPageChoices = []int{5, 10, 20, 50}

// ListParams is the per-request input of the list panel.
type ListParams struct {
	Page      int
	PerPage   int
	Filter    listing.Filter
	Selection *listing.Selection
	Now       time.Time
}

// Query encodes the cursor and filter so links keep them.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 && p.PerPage != listing.DefaultItemsPerPage {
		q.Set("perPage", strconv.Itoa(p.PerPage))
	}
	if p.Filter.Query != "" {
		q.Set("q", p.Filter.Query)
	}
	if p.Filter.Department != "" {
		q.Set("department", p.Filter.Department)
	}
	if p.Filter.Position != "" {
		q.Set("position", p.Filter.Position)
	}
	return q
}

// Href is the list URL for these params.
func (p ListParams) Href() string {
	q := p.Query()
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// RowModel is one employee in the table or grid.
type RowModel struct {
	ID               int
	FullName         string
	FirstName        string
	LastName         string
	DateOfEmployment string
	DateOfBirth      string
	Phone            string
	Email            string
	Department       string
	Position         string
	Age              string
	YearsOfService   string
	Selected         bool
	SelectLabel      string
	EditHref         string
	DeleteHref       string
}

// SelectAllModel drives the header checkbox.
type SelectAllModel struct {
	Checked       bool
	Indeterminate bool
	Label         string
}

// PageLink is one entry of the page strip.
type PageLink struct {
	Number   int
	Href     string
	Current  bool
	Ellipsis bool
}

// PerPageOption is one page-size choice.
type PerPageOption struct {
	Value    int
	Selected bool
}

// PaginationModel feeds the "pagination" template.
type PaginationModel struct {
	Visible        bool
	Summary        string
	PrevHref       string
	NextHref       string
	PrevLabel      string
	NextLabel      string
	Items          []PageLink
	PerPageLabel   string
	PerPageOptions []PerPageOption
	// Hidden filter values carried by the page-size form.
	Filter listing.Filter
}

// SelectOption is one <option> in a filter or form select.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// FilterModel feeds the search bar.
type FilterModel struct {
	Query            string
	QueryPlaceholder string
	SearchLabel      string
	Departments      []SelectOption
	Positions        []SelectOption
	PerPage          int
}

// ListModel feeds the "employee-list" template.
type ListModel struct {
	Grid           bool
	EmptyText      string
	Columns        []string
	ActionsLabel   string
	EditLabel      string
	DeleteLabel    string
	AgeLabel       string
	ServiceLabel   string
	SelectAll      SelectAllModel
	SelectionCount string
	ReturnTo       string
	Rows           []RowModel
	Pagination     PaginationModel
	Filter         FilterModel
	ExportHref     string
	ExportLabel    string
}

// EmployeeList renders the table or grid, the search bar and pagination.
// It is recomputed on every render since its output depends on the request.
type EmployeeList struct {
	r       *Renderer
	store   *store.Store
	tr      *i18n.Translator
	catalog domain.Catalog
}

// NewEmployeeList creates the list panel.
func NewEmployeeList(r *Renderer, s *store.Store, tr *i18n.Translator, catalog domain.Catalog) *EmployeeList {
	return &EmployeeList{r: r, store: s, tr: tr, catalog: catalog}
}

// Model builds the panel for the clamped window described by p.
func (l *EmployeeList) Model(p ListParams) (ListModel, listing.Window) {
	st := l.store.GetState()
	w := listing.Compute(st.Employees, p.Filter, p.Page, p.PerPage)
	p.Page, p.PerPage = w.Page, w.PerPage
	sel := p.Selection
	if sel == nil {
		sel = listing.NewSelection()
	}
	ids := w.IDs()

	m := ListModel{
		Grid:         st.ViewMode == domain.ViewModeGrid,
		EmptyText:    l.tr.T("Employee.List.Empty"),
		ActionsLabel: l.tr.T("Employee.List.Actions"),
		EditLabel:    l.tr.T("Common.Actions.Edit"),
		DeleteLabel:  l.tr.T("Common.Actions.Delete"),
		AgeLabel:     l.tr.T("Employee.Card.Age"),
		ServiceLabel: l.tr.T("Employee.Card.YearsOfService"),
		SelectAll: SelectAllModel{
			Checked:       sel.IsAllSelected(ids),
			Indeterminate: sel.IsSomeSelected(ids),
			Label:         l.tr.T("Employee.List.SelectAll"),
		},
		ReturnTo:    p.Href(),
		ExportHref:  "/export.xlsx?" + p.Query().Encode(),
		ExportLabel: l.tr.T("Common.Actions.Export"),
		Pagination:  l.pagination(p, w),
		Filter:      l.filter(p),
	}
	if n := sel.Len(); n > 0 {
		m.SelectionCount = l.tr.Plural("Employee.Selection.Count", n)
	}
	for _, f := range domain.Fields() {
		m.Columns = append(m.Columns, l.tr.Field(f))
	}
	for _, e := range w.Items {
		m.Rows = append(m.Rows, l.row(e, sel, p.Now))
	}
	return m, w
}

// Render returns the panel HTML and the window it showed.
func (l *EmployeeList) Render(p ListParams) (template.HTML, listing.Window, error) {
	m, w := l.Model(p)
	html, err := l.r.Fragment("employee-list", m)
	return html, w, err
}

func (l *EmployeeList) row(e domain.Employee, sel *listing.Selection, now time.Time) RowModel {
	r := RowModel{
		ID:               e.ID,
		FullName:         e.FullName(),
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		DateOfEmployment: l.tr.FormatDate(e.DateOfEmployment),
		DateOfBirth:      l.tr.FormatDate(e.DateOfBirth),
		Phone:            e.Phone,
		Email:            e.Email,
		Department:       optionLabel(l.catalog.Departments, e.Department),
		Position:         optionLabel(l.catalog.Positions, e.Position),
		Selected:         sel.IsSelected(e.ID),
		SelectLabel:      l.tr.T("Employee.List.SelectRow", map[string]any{"EmployeeName": e.FullName()}),
		EditHref:         fmt.Sprintf("/employees/%d/edit", e.ID),
		DeleteHref:       fmt.Sprintf("/employees/%d/delete", e.ID),
	}
	if age, ok := e.Age(now); ok {
		r.Age = strconv.Itoa(age)
	}
	if years, ok := e.YearsOfService(now); ok {
		r.YearsOfService = strconv.Itoa(years)
	}
	return r
}

func (l *EmployeeList) pagination(p ListParams, w listing.Window) PaginationModel {
	first, last := listing.Bounds(w.Page, w.PerPage, w.TotalItems)
	m := PaginationModel{
		Visible: listing.Visible(w.TotalPages),
		Summary: l.tr.T("Employee.Pagination.Summary", map[string]any{
			"First": first,
			"Last":  last,
			"Total": w.TotalItems,
		}),
		PrevLabel:    l.tr.T("Common.Actions.Previous"),
		NextLabel:    l.tr.T("Common.Actions.Next"),
		PerPageLabel: l.tr.T("Employee.Pagination.PerPage"),
		Filter:       p.Filter,
	}
	at := func(page int) string {
		q := p
		q.Page = page
		return q.Href()
	}
	if w.Page > 1 {
		m.PrevHref = at(w.Page - 1)
	}
	if w.Page < w.TotalPages {
		m.NextHref = at(w.Page + 1)
	}
	for _, it := range listing.PageNumbers(w.Page, w.TotalPages, listing.MaxVisiblePages) {
		if it.Ellipsis {
			m.Items = append(m.Items, PageLink{Ellipsis: true})
			continue
		}
		m.Items = append(m.Items, PageLink{Number: it.Number, Href: at(it.Number), Current: it.Number == w.Page})
	}
	for _, n := range PerPageChoices {
		m.PerPageOptions = append(m.PerPageOptions, PerPageOption{Value: n, Selected: n == w.PerPage})
	}
	return m
}

func (l *EmployeeList) filter(p ListParams) FilterModel {
	m := FilterModel{
		Query:            p.Filter.Query,
		QueryPlaceholder: l.tr.T("Employee.Filter.Query"),
		SearchLabel:      l.tr.T("Common.Actions.Search"),
		PerPage:          p.PerPage,
	}
	m.Departments = append(m.Departments, SelectOption{Label: l.tr.T("Employee.Filter.AllDepartments")})
	m.Departments = append(m.Departments, selectOptions(l.catalog.Departments, p.Filter.Department)...)
	m.Positions = append(m.Positions, SelectOption{Label: l.tr.T("Employee.Filter.AllPositions")})
	m.Positions = append(m.Positions, selectOptions(l.catalog.Positions, p.Filter.Position)...)
	return m
}

func selectOptions(opts []domain.Option, selected string) []SelectOption {
	out := make([]SelectOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, SelectOption{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return out
}

func optionLabel(opts []domain.Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
