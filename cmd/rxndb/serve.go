// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rxndb/internal/dataset"
	"github.com/pdiddy/rxndb/internal/server"
	"github.com/pdiddy/rxndb/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the plotting dashboard",
	Long: `Serve loads the record database and runs the dashboard HTTP server.
The dashboard plots fitted curves over their calibration windows and
filters the table by reactant and product phases.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	table, rejects, err := dataset.Load(dataDir(cmd), os.Stderr)
	if err != nil {
		return err
	}

	cfg := types.ServerConfig{
		Host: viper.GetString("server.host"),
		Port: viper.GetInt("server.port"),
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}

	s := server.New(table, rejects, viper.GetInt("dataset.sample_resolution"))
	fmt.Fprintf(os.Stderr, "Serving %d reactions on http://%s\n", table.Len(), server.Addr(cfg))
	return s.Run(cfg)
}

func init() {
	serveCmd.Flags().String("host", "", "listen address (overrides config)")
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
