package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/api/dto"
	"github.com/spec-kit/employee-directory/internal/confirm"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/export"
	"github.com/spec-kit/employee-directory/internal/form"
	"github.com/spec-kit/employee-directory/internal/listing"
	"github.com/spec-kit/employee-directory/internal/session"
	"github.com/spec-kit/employee-directory/internal/store"
	"github.com/spec-kit/employee-directory/internal/view"
	apperrors "github.com/spec-kit/employee-directory/pkg/util"
)

// EmployeesHandler serves the employee view: the list or grid, the form
// panel, navigation, selection, deletion and export.
type EmployeesHandler struct {
	renderer *view.Renderer
	now      func() time.Time
	logger   *zap.Logger
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(renderer *view.Renderer, now func() time.Time, logger *zap.Logger) *EmployeesHandler {
	if now == nil {
		now = time.Now
	}
	return &EmployeesHandler{renderer: renderer, now: now, logger: logger}
}

// Index handles GET /.
func (h *EmployeesHandler) Index(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewBadRequest("invalid list query", err)
	}
	body, err := h.panel(ws, q)
	if err != nil {
		return err
	}
	return WritePage(c, h.renderer, ws, nil, fiber.StatusOK, body)
}

// panel is the form while the add/edit view is active and the list
// otherwise.
func (h *EmployeesHandler) panel(ws *session.Workspace, q dto.ListQuery) (template.HTML, error) {
	if ws.Store.GetState().CurrentView == domain.ViewAddNew {
		return ws.FormShell.Render()
	}

	p := h.params(ws, q)
	win := listing.Compute(ws.Store.GetState().Employees, p.Filter, p.Page, p.PerPage)
	ws.MoveTo(win.Page, win.PerPage, win.IDs())
	p.Selection = ws.Selection()

	head, err := ws.EmployeeHeader.Render()
	if err != nil {
		return "", err
	}
	list, _, err := ws.List.Render(p)
	if err != nil {
		return "", err
	}
	return head + list, nil
}

// params turns a list query into render input. A missing page means the
// first page; a missing page size keeps the session's current one.
func (h *EmployeesHandler) params(ws *session.Workspace, q dto.ListQuery) view.ListParams {
	_, perPage := ws.Cursor()
	if q.PerPage > 0 {
		perPage = q.PerPage
	}
	return view.ListParams{
		Page:    q.Page,
		PerPage: perPage,
		Filter: listing.Filter{
			Query:      q.Q,
			Department: q.Department,
			Position:   q.Position,
		},
		Now: h.now(),
	}
}

// SetViewMode handles POST /view-mode.
func (h *EmployeesHandler) SetViewMode(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var req dto.ViewModeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", err)
	}
	mode, err := domain.ParseViewMode(req.Mode)
	if err != nil {
		return apperrors.NewBadRequest("invalid view mode", err)
	}
	ws.Store.Dispatch(store.SetViewMode{Mode: mode})
	return seeOther(c, req.ReturnTo)
}

// ToggleViewMode handles POST /view-mode/toggle.
func (h *EmployeesHandler) ToggleViewMode(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	ws.Store.Dispatch(store.ToggleViewMode{})
	return seeOther(c, c.FormValue("returnTo"))
}

// ShowList handles POST /nav/list.
func (h *EmployeesHandler) ShowList(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	ws.Store.Dispatch(store.ShowEmployeeList{})
	return seeOther(c, "/")
}

// ShowAddNew handles POST /nav/new with a blank form.
func (h *EmployeesHandler) ShowAddNew(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	if err := ws.Form.Mount(nil); err != nil {
		return formError(err)
	}
	ws.Store.Dispatch(store.ClearSelectedEmployee{})
	ws.Store.Dispatch(store.ShowAddNew{})
	return seeOther(c, "/")
}

// Edit handles GET /employees/:id/edit.
func (h *EmployeesHandler) Edit(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewBadRequest("invalid employee id", err)
	}
	if err := ws.Form.Mount(&id); err != nil {
		return formError(err)
	}
	ws.Store.Dispatch(store.ShowEditEmployee{ID: id})
	return seeOther(c, "/")
}

// ConfirmDelete handles GET /employees/:id/delete.
func (h *EmployeesHandler) ConfirmDelete(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewBadRequest("invalid employee id", err)
	}

	prompt := confirm.UnknownEmployee(ws.Translator)
	if e, ok := ws.Store.GetState().FindEmployee(id); ok {
		prompt = confirm.DeleteEmployee(ws.Translator, e)
	}
	body, err := ws.Confirm.Render(prompt, fmt.Sprintf("/employees/%d/delete", id), SafeReturn(c.Query("returnTo")))
	if err != nil {
		return err
	}
	return WritePage(c, h.renderer, ws, nil, fiber.StatusOK, body)
}

// Delete handles POST /employees/:id/delete with the dialog decision.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewBadRequest("invalid employee id", err)
	}
	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", err)
	}
	if confirm.Decide(req.Decision) {
		if res := ws.Store.Dispatch(store.DeleteEmployee{ID: id}); res != store.Applied {
			h.logger.Info("delete had no effect", zap.Int("employee_id", id), zap.Stringer("result", res))
		}
	}
	return seeOther(c, req.ReturnTo)
}

// ToggleSelected handles POST /selection/:id/toggle.
func (h *EmployeesHandler) ToggleSelected(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewBadRequest("invalid employee id", err)
	}
	ws.ToggleSelected(id)
	return seeOther(c, c.FormValue("returnTo"))
}

// ToggleAllSelected handles POST /selection/toggle-all for the page the
// returnTo URL shows.
func (h *EmployeesHandler) ToggleAllSelected(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var req dto.ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", err)
	}
	returnTo := SafeReturn(req.ReturnTo)
	u, err := url.Parse(returnTo)
	if err != nil {
		return apperrors.NewBadRequest("invalid return address", err)
	}
	p := h.params(ws, dto.ListQueryFromValues(u.Query()))
	win := listing.Compute(ws.Store.GetState().Employees, p.Filter, p.Page, p.PerPage)
	ws.ToggleAllSelected(win.IDs())
	return seeOther(c, returnTo)
}

// Export handles GET /export.xlsx: the selected employees, or every
// employee matching the filter when nothing is selected.
func (h *EmployeesHandler) Export(c *fiber.Ctx) error {
	ws, err := session.Current(c)
	if err != nil {
		return err
	}
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewBadRequest("invalid list query", err)
	}

	all := ws.Store.GetState().Employees
	rows := listing.Filter{Query: q.Q, Department: q.Department, Position: q.Position}.Apply(all)
	if ids := ws.Selection().IDs(); len(ids) > 0 {
		rows = export.Select(all, ids)
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, ws.Translator, rows); err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Attachment("employees.xlsx")
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(buf.Bytes())
}

func formError(err error) error {
	if errors.Is(err, form.ErrSubmitting) {
		return apperrors.NewConflict("a submission is in progress", nil)
	}
	return err
}
