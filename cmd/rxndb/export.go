// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rxndb/internal/store"
	"github.com/pdiddy/rxndb/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot the reaction table to SQLite, CSV, YAML, or JSON",
	Long: `Export loads the record database and writes a snapshot of the
assembled table. The sqlite format additionally stores the sampled
curve points of every reaction, so downstream tools can plot without
re-evaluating the fits. Filter flags restrict the snapshot to a subset.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	table, _, err := loadTable(cmd)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = viper.GetString("export.output_dir")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch types.ExportFormat(format) {
	case types.ExportSQLite, "":
		resolution := viper.GetInt("dataset.sample_resolution")
		path := filepath.Join(outDir, "rxndb.db")
		if err := store.ExportSQLite(context.Background(), table, path, resolution); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	case types.ExportCSV:
		path := filepath.Join(outDir, "rxndb.csv")
		if err := store.ExportCSV(table, path); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	case types.ExportYAML:
		path := filepath.Join(outDir, "rxndb.yaml")
		if err := store.ExportYAML(table, path); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	case types.ExportJSON:
		path := filepath.Join(outDir, "rxndb.json")
		if err := store.ExportJSON(table, path); err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	default:
		return fmt.Errorf("unsupported format %q: use sqlite, csv, yaml, or json", format)
	}

	return nil
}

func init() {
	exportCmd.Flags().String("format", "sqlite", "export format: sqlite, csv, yaml, or json")
	exportCmd.Flags().String("out", "", "output directory (default: configured export.output_dir)")
	exportCmd.Flags().StringSlice("reactant", nil, "keep reactions consuming any of these phases")
	exportCmd.Flags().StringSlice("product", nil, "keep reactions producing any of these phases")
	exportCmd.Flags().String("type", "", "filter by curve type")

	rootCmd.AddCommand(exportCmd)
}
