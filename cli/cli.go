// TODO: refactor [RootCmd] to be a func
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/chadwickbureau/retrosheet/cmd"
	"github.com/chadwickbureau/retrosheet/internal/echo"
)

// RootCmd is the root command for the retrosheet CLI
var RootCmd = &cobra.Command{
	Use:   "retrosheet",
	Short: "Retrosheet event-file toolkit",
	Long: echo.HeaderStyle().Render("Retrosheet Events") + "\n\n" +
		"Ingest Retrosheet play-by-play event files into Postgres\n" +
		"and serve them over a small read-only HTTP API.",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to config file (default: conf.toml)")
	RootCmd.AddCommand(cmd.DbCmd())
	RootCmd.AddCommand(cmd.ServerCmd())
	RootCmd.AddCommand(cmd.EventsCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
