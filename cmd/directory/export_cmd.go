package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spec-kit/employee-directory/internal/config"
	"github.com/spec-kit/employee-directory/internal/export"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/listing"
	"github.com/spec-kit/employee-directory/internal/repository"
)

func newExportCmd() *cobra.Command {
	var (
		out    string
		lang   string
		filter listing.Filter
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the seed employees to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			repo := repository.NewSeedRepository(cfg.Directory.SeedPath, cfg.Directory.CatalogPath)
			list, err := repo.Employees()
			if err != nil {
				return err
			}
			bundle, err := i18n.NewBundle(cfg.I18n.DefaultLanguage, cfg.I18n.SupportedLanguages)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = bundle.Default()
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return export.WriteXLSX(w, bundle.NewTranslator(lang), filter.Apply(list))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "employees.xlsx", "Output file, - for stdout")
	cmd.Flags().StringVar(&lang, "lang", "", "Header language (default: configured default language)")
	cmd.Flags().StringVar(&filter.Query, "query", "", "Fuzzy name or email filter")
	cmd.Flags().StringVar(&filter.Department, "department", "", "Department value filter")
	cmd.Flags().StringVar(&filter.Position, "position", "", "Position value filter")
	return cmd
}
