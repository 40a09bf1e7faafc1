package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/windfab/towerdesk/entity"
	"github.com/windfab/towerdesk/export"
	"github.com/windfab/towerdesk/gateway/sqlite"
	"github.com/windfab/towerdesk/manager"
)

var (
	exportDB  string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export <entity-type>",
	Short: "Export an entity table to CSV",
	Long: `Export writes one entity table to CSV using its configured export
columns. Entity types: project, supplier, bom_item, mto_package.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "towerdesk.db", "sqlite database path")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, ok := entity.Configs()[args[0]]
	if !ok {
		return fmt.Errorf("unknown entity type %q", args[0])
	}

	gw, err := sqlite.Open(exportDB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer gw.Close()

	m := manager.New(cfg, gw)
	if err := m.Refresh(cmd.Context()); err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return export.WriteCSV(out, cfg.Columns, m.ToTabularRows())
}
