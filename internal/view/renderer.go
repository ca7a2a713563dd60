// Package view renders the employee directory as server-side HTML.
//
// Components receive the capabilities they use (store, translator, form
// controller) at construction and build plain view models; templates only
// format those models.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses every template once.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("directory").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Fragment renders one named template into HTML that can be embedded in a
// page.
func (r *Renderer) Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("view: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Page is a complete document.
type Page struct {
	Lang   string
	Title  string
	Header template.HTML
	Body   template.HTML
}

// Page writes a full HTML document to w.
func (r *Renderer) Page(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "layout", p); err != nil {
		return fmt.Errorf("view: render page: %w", err)
	}
	return nil
}

// cached keeps the last fragment of a bound component and renders again only
// when its binding is dirty.
type cached struct {
	mu      sync.Mutex
	binding *Binding
	html    template.HTML
	renders int
}

func (c *cached) get(render func() (template.HTML, error)) (template.HTML, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.binding.Dirty() {
		return c.html, nil
	}
	// Clear first so a change arriving during render marks it dirty again.
	c.binding.MarkClean()
	html, err := render()
	if err != nil {
		c.binding.invalidate()
		return "", err
	}
	c.html = html
	c.renders++
	return html, nil
}

func (c *cached) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}
