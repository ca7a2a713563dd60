package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/api/dto"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/form"
	"github.com/spec-kit/employee-directory/internal/session"
	"github.com/spec-kit/employee-directory/internal/view"
	apperrors "github.com/spec-kit/employee-directory/pkg/util"
)

// HeaderFormValid tells the form script whether submit may be enabled.
const HeaderFormValid = "X-Form-Valid"

// FormHandler drives the session's add/edit form controller.
type FormHandler struct {
	renderer *view.Renderer
	logger   *zap.Logger
}

// NewFormHandler constructs handler.
func NewFormHandler(renderer *view.Renderer, logger *zap.Logger) *FormHandler {
	return &FormHandler{renderer: renderer, logger: logger}
}

// Field handles POST /form/field and answers with the re-rendered input.
func (h *FormHandler) Field(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var req dto.FieldEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", err)
	}
	f, err := domain.ParseField(req.Field)
	if err != nil {
		return apperrors.NewBadRequest("unknown field", err)
	}

	switch req.Event {
	case "blur":
		err = ws.Form.Blur(f)
	case "change", "":
		err = ws.Form.Change(f, req.Value)
	default:
		return apperrors.NewBadRequest("unknown field event "+strconv.Quote(req.Event), nil)
	}
	if err != nil {
		return formError(err)
	}

	html, err := ws.FormShell.RenderField(f)
	if err != nil {
		return err
	}
	c.Set(HeaderFormValid, strconv.FormatBool(ws.Form.CanSubmit()))
	c.Type("html", "utf-8")
	return c.SendString(string(html))
}

// Submit handles POST /form. It blocks for the submission delay; an invalid
// form is shown again with every error visible.
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var req dto.EmployeeForm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", err)
	}
	for f, v := range req.Values() {
		if err := ws.Form.Change(f, v); err != nil {
			return formError(err)
		}
	}

	e, err := ws.Form.Submit(c.UserContext())
	switch {
	case err == nil:
		if e != nil {
			h.logger.Debug("employee saved", zap.String(session.IDKey, ws.ID), zap.Int("employee_id", e.ID))
		}
		return seeOther(c, "/")
	case errors.Is(err, form.ErrInvalid):
		body, rerr := ws.FormShell.Render()
		if rerr != nil {
			return rerr
		}
		return WritePage(c, h.renderer, ws, nil, fiber.StatusUnprocessableEntity, body)
	case errors.Is(err, form.ErrRejected):
		return apperrors.NewConflict("employee could not be saved", nil)
	default:
		return formError(err)
	}
}

// Reset handles POST /form/reset.
func (h *FormHandler) Reset(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	if err := ws.Form.Reset(); err != nil {
		return formError(err)
	}
	return seeOther(c, "/")
}

// Cancel handles POST /form/cancel and returns to the list.
func (h *FormHandler) Cancel(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	if err := ws.Form.Cancel(); err != nil {
		return formError(err)
	}
	return seeOther(c, "/")
}
