package main

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskboard/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run:   serve,
}

func serve(cmd *cobra.Command, args []string) {
	app.InitDefaultLogger()
	app.MustReadConfig(configPath)
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustListenAndServeHTTP()
}
