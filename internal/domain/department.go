package domain

// Option is one selectable catalog entry.
type Option struct {
	Value string `yaml:"value" validate:"required"`
	Label string `yaml:"label" validate:"required"`
}

// Catalog holds the fixed department and position choices offered by the form.
type Catalog struct {
	Departments []Option `yaml:"departments" validate:"required,min=1,dive"`
	Positions   []Option `yaml:"positions" validate:"required,min=1,dive"`
}

// HasDepartment reports whether value is a catalog department.
func (c Catalog) HasDepartment(value string) bool {
	return hasOption(c.Departments, value)
}

// HasPosition reports whether value is a catalog position.
func (c Catalog) HasPosition(value string) bool {
	return hasOption(c.Positions, value)
}

// Options returns the catalog entries backing a select field, or nil for
// free-text fields.
func (c Catalog) Options(f Field) []Option {
	switch f {
	case FieldDepartment:
		return c.Departments
	case FieldPosition:
		return c.Positions
	}
	return nil
}

func hasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
