package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todoctl",
		Short: "Admin tool for the to-do list service",
		Long: `todoctl runs the embedded Postgres migrations and prints bcrypt
password hashes compatible with the service.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newHashCmd())
	return root
}
