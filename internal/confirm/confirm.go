// Package confirm models the yes/no dialog shown before destructive actions.
package confirm

import (
	"strings"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// Decision values posted back by the dialog.
const (
	Proceed = "proceed"
	Cancel  = "cancel"
)

// Prompt is the text of one confirmation dialog.
type Prompt struct {
	Title       string
	Description string
	ProceedText string
	CancelText  string
}

// Translator is the subset of the translation service a prompt needs.
type Translator interface {
	T(id string, data ...map[string]any) string
}

// DeleteEmployee builds the prompt shown before removing e.
func DeleteEmployee(t Translator, e domain.Employee) Prompt {
	return Prompt{
		Title: t.T("Common.Messages.Confirm"),
		Description: t.T("Common.Messages.DeleteEmployeeConfirm", map[string]any{
			"EmployeeName": e.FullName(),
		}),
		ProceedText: t.T("Common.Actions.Proceed"),
		CancelText:  t.T("Common.Actions.Cancel"),
	}
}

// UnknownEmployee builds the prompt for a record that no longer exists. Its
// outcome is ignored by callers since there is nothing to delete.
func UnknownEmployee(t Translator) Prompt {
	return Prompt{
		Title:       t.T("Common.Messages.Confirm"),
		Description: t.T("Common.Messages.UnknownEmployee"),
		ProceedText: t.T("Common.Actions.Proceed"),
		CancelText:  t.T("Common.Actions.Cancel"),
	}
}

// Decide resolves a posted decision. Only an explicit proceed confirms;
// anything else, including an empty or garbled value, declines.
func Decide(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), Proceed)
}
