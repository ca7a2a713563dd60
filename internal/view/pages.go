package view

import (
	"html/template"

	"github.com/spec-kit/employee-directory/internal/i18n"
)

// TextModel feeds the simple title-and-body pages.
type TextModel struct {
	Title     string
	Body      string
	LinkHref  string
	LinkLabel string
}

// SettingsModel feeds the "settings" template.
type SettingsModel struct {
	Title      string
	Body       string
	ApplyLabel string
	Languages  []LanguageOption
}

// Home renders the landing page.
func (r *Renderer) Home(tr *i18n.Translator) (template.HTML, error) {
	return r.Fragment("home", TextModel{
		Title:     tr.T("Common.Home.Title"),
		Body:      tr.T("Common.Home.Body"),
		LinkHref:  "/",
		LinkLabel: tr.T("Common.Nav.Employees"),
	})
}

// Settings renders the language preferences page.
func (r *Renderer) Settings(tr *i18n.Translator, languages []string) (template.HTML, error) {
	m := SettingsModel{
		Title:      tr.T("Common.Settings.Title"),
		Body:       tr.T("Common.Settings.Body"),
		ApplyLabel: tr.T("Common.Actions.Apply"),
	}
	current := tr.CurrentLanguage()
	for _, code := range languages {
		m.Languages = append(m.Languages, LanguageOption{
			Code:   code,
			Label:  tr.T("Common.Language." + code),
			Active: code == current,
		})
	}
	return r.Fragment("settings", m)
}

// Error renders an error panel with a link back to the list.
func (r *Renderer) Error(title, message, backLabel string) (template.HTML, error) {
	return r.Fragment("error", TextModel{
		Title:     title,
		Body:      message,
		LinkHref:  "/",
		LinkLabel: backLabel,
	})
}
