package handlers

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/session"
	"github.com/spec-kit/employee-directory/internal/view"
)

// WritePage renders body inside the layout. The header is the session's
// cached header when ws is not nil.
func WritePage(c *fiber.Ctx, r *view.Renderer, ws *session.Workspace, tr *i18n.Translator, status int, body template.HTML) error {
	var header template.HTML
	if ws != nil {
		h, err := ws.Header.Render()
		if err != nil {
			return err
		}
		header = h
		tr = ws.Translator
	}

	var buf bytes.Buffer
	err := r.Page(&buf, view.Page{
		Lang:   tr.CurrentLanguage(),
		Title:  tr.T("Common.App.Title"),
		Header: header,
		Body:   body,
	})
	if err != nil {
		return err
	}
	c.Status(status)
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// SafeReturn keeps redirects on this site.
func SafeReturn(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	return raw
}

func seeOther(c *fiber.Ctx, to string) error {
	return c.Redirect(SafeReturn(to), fiber.StatusSeeOther)
}
