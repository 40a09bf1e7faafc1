// Command towerdesk runs the dashboard backend and exports entity tables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "towerdesk",
	Short: "Wind-tower manufacturing operations backend",
	Long: `towerdesk serves the record backend for the wind-tower manufacturing
dashboard (projects, suppliers, BOM items, MTO packages) and exports
entity tables to CSV.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
