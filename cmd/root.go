package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WangNatalie/dzcibimpact/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dzcib",
	Short: "Land-cover ecosystem-service indicator pipeline",
	Long: "Converts land-cover area tallies into biocapacity, carbon sequestration, " +
		"water filtration, and aesthetic quality indicators backed by the SOLRIS lookup table.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		// Every invocation gets a correlation id on the global logger.
		zap.ReplaceGlobals(zap.L().With(zap.String("run_id", uuid.New().String())))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
