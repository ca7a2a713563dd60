package repository

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/employee-directory/internal/domain"
)

//go:embed seed/employees.yaml seed/catalog.yaml
var builtin embed.FS

// ErrDuplicateID is returned when two seed records share an id.
var ErrDuplicateID = errors.New("duplicate employee id")

// SeedRepository supplies the records every new session starts from and the
// department/position catalog. Empty paths fall back to the built-in files.
// JSON files are accepted since the YAML decoder reads them too.
type SeedRepository interface {
	Employees() ([]domain.Employee, error)
	Catalog() (domain.Catalog, error)
}

type seedRepository struct {
	seedPath    string
	catalogPath string
	validate    *validator.Validate
}

// NewSeedRepository builds the repository.
func NewSeedRepository(seedPath, catalogPath string) SeedRepository {
	return &seedRepository{
		seedPath:    seedPath,
		catalogPath: catalogPath,
		validate:    validator.New(),
	}
}

func (r *seedRepository) Employees() ([]domain.Employee, error) {
	var list []domain.Employee
	if err := r.decode(r.seedPath, "seed/employees.yaml", &list); err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	seen := make(map[int]struct{}, len(list))
	for i := range list {
		if err := r.validate.Struct(list[i]); err != nil {
			return nil, fmt.Errorf("load seed: record %d: %w", i, err)
		}
		if _, dup := seen[list[i].ID]; dup {
			return nil, fmt.Errorf("load seed: %w: %d", ErrDuplicateID, list[i].ID)
		}
		seen[list[i].ID] = struct{}{}
	}
	return list, nil
}

func (r *seedRepository) Catalog() (domain.Catalog, error) {
	var c domain.Catalog
	if err := r.decode(r.catalogPath, "seed/catalog.yaml", &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	if err := r.validate.Struct(c); err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func (r *seedRepository) decode(path, fallback string, out any) error {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = builtin.ReadFile(fallback)
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, out)
}
