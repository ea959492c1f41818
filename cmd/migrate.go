package main

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskboard/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long:  `Create the users, sessions and tasks tables if they don't exist yet.`,
	Run:   migrate,
}

func migrate(cmd *cobra.Command, args []string) {
	app.InitDefaultLogger()
	app.MustReadConfig(configPath)
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustMigratePostgres()
}
