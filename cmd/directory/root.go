package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "directory",
		Short:        "Employee directory web application",
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd(), newExportCmd())
	return cmd
}
