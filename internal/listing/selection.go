package listing

import "slices"

// Selection is an ordered set of selected employee ids. The zero value is an
// empty selection. Select-all operations are scoped to the ids of the page
// passed in.
type Selection struct {
	ids []int
}

// NewSelection builds a selection from ids, dropping duplicates.
func NewSelection(ids ...int) *Selection {
	s := &Selection{}
	for _, id := range ids {
		if !s.IsSelected(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []int {
	return slices.Clone(s.ids)
}

// Len is the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id int) bool {
	return slices.Contains(s.ids, id)
}

// Toggle flips one id.
func (s *Selection) Toggle(id int) {
	if idx := slices.Index(s.ids, id); idx >= 0 {
		s.ids = slices.Delete(s.ids, idx, idx+1)
		return
	}
	s.ids = append(s.ids, id)
}

// ToggleAll selects every id of the page unless all of them already are, in
// which case exactly those ids are deselected. Selections on other pages are
// left alone.
func (s *Selection) ToggleAll(pageIDs []int) {
	if s.IsAllSelected(pageIDs) {
		s.ids = slices.DeleteFunc(s.ids, func(id int) bool {
			return slices.Contains(pageIDs, id)
		})
		return
	}
	for _, id := range pageIDs {
		if !s.IsSelected(id) {
			s.ids = append(s.ids, id)
		}
	}
}

// IsAllSelected is true when the page is non-empty and every id is selected.
func (s *Selection) IsAllSelected(pageIDs []int) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.IsSelected(id) {
			return false
		}
	}
	return true
}

// IsSomeSelected is true when a non-empty proper subset of the page is
// selected (the indeterminate checkbox state).
func (s *Selection) IsSomeSelected(pageIDs []int) bool {
	selected := 0
	for _, id := range pageIDs {
		if s.IsSelected(id) {
			selected++
		}
	}
	return selected > 0 && selected < len(pageIDs)
}

// Prune keeps only ids present on the page that is active after a page or
// page-size change.
func (s *Selection) Prune(pageIDs []int) {
	s.ids = slices.DeleteFunc(s.ids, func(id int) bool {
		return !slices.Contains(pageIDs, id)
	})
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}
