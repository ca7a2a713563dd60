package listing

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// Filter narrows the list before pagination. Empty fields match everything.
type Filter struct {
	Department string
	Position   string
	// Query is fuzzy-matched, case and diacritics insensitive, against the
	// full name and the email address.
	Query string
}

// IsZero reports whether the filter keeps every employee.
func (f Filter) IsZero() bool {
	return f.Department == "" && f.Position == "" && strings.TrimSpace(f.Query) == ""
}

// Apply returns the matching employees in list order. With a zero filter the
// input slice itself is returned.
func (f Filter) Apply(list []domain.Employee) []domain.Employee {
	if f.IsZero() {
		return list
	}
	query := strings.TrimSpace(f.Query)
	out := make([]domain.Employee, 0, len(list))
	for _, e := range list {
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		if f.Position != "" && e.Position != f.Position {
			continue
		}
		if query != "" &&
			!fuzzy.MatchNormalizedFold(query, e.FullName()) &&
			!fuzzy.MatchNormalizedFold(query, e.Email) {
			continue
		}
		out = append(out, e)
	}
	return out
}
