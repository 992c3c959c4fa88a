// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rxndb/internal/dataset"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <id>",
	Short: "Evaluate a reaction's fitted curve across its validity window",
	Long: `Sample evaluates the polynomial fit of one reaction at evenly spaced
temperatures across its calibration window and prints the (T, P) pairs.
The fit is never evaluated outside the window; a collapsed window yields
a single point.`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func runSample(cmd *cobra.Command, args []string) error {
	table, _, err := dataset.Load(dataDir(cmd), os.Stderr)
	if err != nil {
		return err
	}

	rec, ok := table.ByID(args[0])
	if !ok {
		return fmt.Errorf("unknown reaction id %q", args[0])
	}

	n, _ := cmd.Flags().GetInt("resolution")
	if n == 0 {
		n = viper.GetInt("dataset.sample_resolution")
	}
	if n < 0 {
		return fmt.Errorf("resolution must be positive, got %d", n)
	}

	ts, ps := dataset.Points(rec, n)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"id": rec.ID, "rxn": rec.Reaction, "t": ts, "p": ps})
	}

	fmt.Fprintf(os.Stdout, "%s  (%s)\n", rec.ID, rec.Reaction)
	fmt.Fprintf(os.Stdout, "%12s  %12s\n", "T ("+rec.Units.Temperature+")", "P ("+rec.Units.Pressure+")")
	for i := range ts {
		fmt.Fprintf(os.Stdout, "%12.4f  %12.6f\n", ts[i], ps[i])
	}
	return nil
}

func init() {
	sampleCmd.Flags().Int("resolution", 0, "number of sample points (0 = configured default)")
	sampleCmd.Flags().Bool("json", false, "output samples as JSON")

	rootCmd.AddCommand(sampleCmd)
}
