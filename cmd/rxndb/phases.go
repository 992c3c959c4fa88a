package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rxndb/internal/dataset"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List the unique phase names in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _, err := dataset.Load(dataDir(cmd), os.Stderr)
		if err != nil {
			return err
		}
		for _, p := range table.UniquePhases() {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(phasesCmd)
}
