package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-directory/internal/api/dto"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/session"
	"github.com/spec-kit/employee-directory/internal/view"
	apperrors "github.com/spec-kit/employee-directory/pkg/util"
)

// PagesHandler serves the home and settings pages and the language switch.
type PagesHandler struct {
	renderer  *view.Renderer
	languages []string
}

// NewPagesHandler constructs handler.
func NewPagesHandler(renderer *view.Renderer, languages []string) *PagesHandler {
	return &PagesHandler{renderer: renderer, languages: languages}
}

// Home handles GET /home.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	body, err := h.renderer.Home(ws.Translator)
	if err != nil {
		return err
	}
	return WritePage(c, h.renderer, ws, nil, fiber.StatusOK, body)
}

// Settings handles GET /settings.
func (h *PagesHandler) Settings(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	body, err := h.renderer.Settings(ws.Translator, h.languages)
	if err != nil {
		return err
	}
	return WritePage(c, h.renderer, ws, nil, fiber.StatusOK, body)
}

// ChangeLanguage handles POST /language.
func (h *PagesHandler) ChangeLanguage(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var req dto.LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", err)
	}
	if err := ws.Translator.ChangeLanguage(req.Language); err != nil {
		if errors.Is(err, i18n.ErrUnsupported) {
			return apperrors.NewBadRequest("unsupported language", err)
		}
		return err
	}
	return seeOther(c, req.ReturnTo)
}
