// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rxndb/internal/preprocess"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Convert raw source databases into YAML record files",
	Long: `Preprocess converts raw compilation files into normalized record
files, one reaction per file, ready for load. Use the csv subcommand
for tabular compilations and hp11 for the free-text experimental
bracket listing. Rows that cannot be converted are skipped with a
diagnostic.`,
}

var preprocessCSVCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Convert a tabular CSV compilation into record files",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreprocessCSV,
}

func runPreprocessCSV(cmd *cobra.Command, args []string) error {
	outDir, err := preprocessOutDir(cmd)
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		base := filepath.Base(args[0])
		source = strings.TrimSuffix(base, filepath.Ext(base))
	}

	n, err := preprocess.ConvertCSV(args[0], outDir, source, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d record files to %s\n", n, outDir)
	return nil
}

var preprocessHP11Cmd = &cobra.Command{
	Use:   "hp11 <file>",
	Short: "Convert a free-text experimental bracket listing into record files",
	Long: `Hp11 parses the numbered free-text listing of experimental reaction
brackets, fits a line through the bracket midpoints of each entry, and
writes one record file per entry. Single-bracket entries become point
records with a collapsed window.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreprocessHP11,
}

func runPreprocessHP11(cmd *cobra.Command, args []string) error {
	outDir, err := preprocessOutDir(cmd)
	if err != nil {
		return err
	}

	n, err := preprocess.ConvertHP11(args[0], outDir, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d record files to %s\n", n, outDir)
	return nil
}

func preprocessOutDir(cmd *cobra.Command) (string, error) {
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = dataDir(cmd)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return outDir, nil
}

func init() {
	preprocessCmd.PersistentFlags().String("out", "", "output directory for record files (default: data directory)")
	preprocessCSVCmd.Flags().String("source", "", "source label used in record IDs (default: input file name)")

	preprocessCmd.AddCommand(preprocessCSVCmd)
	preprocessCmd.AddCommand(preprocessHP11Cmd)

	rootCmd.AddCommand(preprocessCmd)
}
