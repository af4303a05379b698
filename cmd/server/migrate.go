package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitcontest/internal/platform/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	Long: `Create every table and index the API needs.

The statements use IF NOT EXISTS, so running migrate against an existing
database is safe and leaves data untouched.

USAGE:

  fitcontest migrate
  DATABASE_URL=postgres://... fitcontest migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cmd.Context(), cfg.DBConnStr)
		if err != nil {
			color.Red("Could not reach the database")
			return err
		}
		defer db.Close()

		if err := database.CreateSchema(cmd.Context(), db); err != nil {
			color.Red("Migration failed")
			return err
		}

		color.Green("Schema is up to date")
		fmt.Printf("Tables: %s\n", strings.Join(database.Tables, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
