// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rxndb/internal/dataset"
	"github.com/pdiddy/rxndb/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load and validate record files, then print the table",
	Long: `Load reads every YAML record file in the data directory, validates
each record, and assembles the valid ones into the reaction table.
Invalid files are skipped with a diagnostic; they never abort the load.`,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	table, rejects, err := loadTable(cmd)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table.Rows()); err != nil {
			return err
		}
	} else {
		printTable(table)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d reactions (%d rejected)\n", table.Len(), len(rejects))
	return nil
}

// dataDir resolves the record directory from the flag or config.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Root().PersistentFlags().GetString("data-dir"); dir != "" {
		return dir
	}
	return viper.GetString("dataset.data_dir")
}

// loadTable loads the record directory and applies any filter flags the
// calling command declares (reactant, product, type).
func loadTable(cmd *cobra.Command) (*dataset.Table, []dataset.Reject, error) {
	table, rejects, err := dataset.Load(dataDir(cmd), os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Lookup("reactant") != nil {
		if reactants, _ := cmd.Flags().GetStringSlice("reactant"); len(reactants) > 0 {
			table = table.ByReactants(reactants)
		}
	}
	if cmd.Flags().Lookup("product") != nil {
		if products, _ := cmd.Flags().GetStringSlice("product"); len(products) > 0 {
			table = table.ByProducts(products)
		}
	}
	if cmd.Flags().Lookup("type") != nil {
		if ct, _ := cmd.Flags().GetString("type"); ct != "" {
			table = table.ByCurveType(types.CurveType(ct))
		}
	}
	return table, rejects, nil
}

func printTable(table *dataset.Table) {
	fmt.Fprintf(os.Stdout, "%-12s  %-30s  %-17s  %s\n", "ID", "Reaction", "Type", "Reference")
	for _, row := range table.Rows() {
		rxn := row.Reaction
		if len(rxn) > 30 {
			rxn = rxn[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-30s  %-17s  %s\n", row.ID, rxn, row.Type, row.Citation)
	}
}

func init() {
	loadCmd.Flags().StringSlice("reactant", nil, "keep reactions consuming any of these phases")
	loadCmd.Flags().StringSlice("product", nil, "keep reactions producing any of these phases")
	loadCmd.Flags().String("type", "", "filter by curve type: phase_boundary, melting_curve, calibration_curve, reaction_curve")
	loadCmd.Flags().Bool("json", false, "output the table as JSON")

	rootCmd.AddCommand(loadCmd)
}
