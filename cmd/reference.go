package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Reload the SOLRIS lookup table without running an indicator",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ref, err := reloadReference(ctx, st)
		if err != nil {
			return err
		}

		zap.L().Info("lookup table reloaded", zap.Int("entries", len(ref)))
		return nil
	},
}

func init() {
	referenceCmd.Flags().StringVar(&flagLookupCSV, "lookup-csv", "", "path to SOLRIS lookup CSV (default from config)")
	rootCmd.AddCommand(referenceCmd)
}
