package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "apply the schema of the configured store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, cleanup, err := openContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Migrate(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("schema up to date")
		return nil
	},
}
