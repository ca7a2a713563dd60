package view

import (
	"html/template"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/store"
)

// NavItem is one header entry. Post entries are rendered as small forms.
type NavItem struct {
	Label  string
	Href   string
	Post   bool
	Active bool
}

// LanguageOption is one entry of the language switch.
type LanguageOption struct {
	Code   string
	Label  string
	Active bool
}

// HeaderModel feeds the "header" template.
type HeaderModel struct {
	AppTitle      string
	Nav           []NavItem
	LanguageLabel string
	ApplyLabel    string
	Languages     []LanguageOption
}

// Header is the application header with navigation and language switch.
type Header struct {
	r     *Renderer
	store *store.Store
	tr    *i18n.Translator
	langs []string
	cache cached
}

// NewHeader binds a header to navigation state and language changes.
func NewHeader(r *Renderer, s *store.Store, tr *i18n.Translator, languages []string) *Header {
	h := &Header{r: r, store: s, tr: tr, langs: languages}
	h.cache.binding = Bind(s, tr, WatchNavigation, nil)
	return h
}

// Model builds the header from the current state.
func (h *Header) Model() HeaderModel {
	st := h.store.GetState()
	m := HeaderModel{
		AppTitle:      h.tr.T("Common.App.Title"),
		LanguageLabel: h.tr.T("Common.Language.Label"),
		ApplyLabel:    h.tr.T("Common.Actions.Apply"),
		Nav: []NavItem{
			{Label: h.tr.T("Common.Nav.Home"), Href: "/home"},
			{
				Label:  h.tr.T("Common.Nav.Employees"),
				Href:   "/nav/list",
				Post:   true,
				Active: st.CurrentView == domain.ViewEmployeeList,
			},
			{
				Label:  h.tr.T("Common.Nav.AddNew"),
				Href:   "/nav/new",
				Post:   true,
				Active: st.CurrentView == domain.ViewAddNew && st.SelectedEmployeeID == nil,
			},
			{Label: h.tr.T("Common.Nav.Settings"), Href: "/settings"},
		},
	}
	current := h.tr.CurrentLanguage()
	for _, code := range h.langs {
		m.Languages = append(m.Languages, LanguageOption{
			Code:   code,
			Label:  h.tr.T("Common.Language." + code),
			Active: code == current,
		})
	}
	return m
}

// Render returns the header HTML, reusing the last output when neither the
// navigation state nor the language changed since.
func (h *Header) Render() (template.HTML, error) {
	return h.cache.get(func() (template.HTML, error) {
		return h.r.Fragment("header", h.Model())
	})
}

// Renders counts actual template executions.
func (h *Header) Renders() int {
	return h.cache.count()
}

// Close releases the subscriptions.
func (h *Header) Close() {
	h.cache.binding.Close()
}

// EmployeeHeaderModel feeds the "employee-header" template.
type EmployeeHeaderModel struct {
	Visible    bool
	Title      string
	ListLabel  string
	GridLabel  string
	ListActive bool
	GridActive bool
}

// EmployeeHeader shows the list title and the list/grid toggle. It is
// hidden while the form panel is shown.
type EmployeeHeader struct {
	r     *Renderer
	store *store.Store
	tr    *i18n.Translator
	cache cached
}

// NewEmployeeHeader binds to navigation state and language changes.
func NewEmployeeHeader(r *Renderer, s *store.Store, tr *i18n.Translator) *EmployeeHeader {
	h := &EmployeeHeader{r: r, store: s, tr: tr}
	h.cache.binding = Bind(s, tr, WatchNavigation, nil)
	return h
}

// Model builds the header from the current state.
func (h *EmployeeHeader) Model() EmployeeHeaderModel {
	st := h.store.GetState()
	return EmployeeHeaderModel{
		Visible:    st.CurrentView == domain.ViewEmployeeList,
		Title:      h.tr.T("Employee.List.Title"),
		ListLabel:  h.tr.T("Employee.ViewMode.List"),
		GridLabel:  h.tr.T("Employee.ViewMode.Grid"),
		ListActive: st.ViewMode == domain.ViewModeList,
		GridActive: st.ViewMode == domain.ViewModeGrid,
	}
}

// Render returns the cached fragment or renders it again when stale.
func (h *EmployeeHeader) Render() (template.HTML, error) {
	return h.cache.get(func() (template.HTML, error) {
		return h.r.Fragment("employee-header", h.Model())
	})
}

// Close releases the subscriptions.
func (h *EmployeeHeader) Close() {
	h.cache.binding.Close()
}
