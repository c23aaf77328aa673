package main

import (
	"github.com/spf13/cobra"

	"github.com/WangNatalie/dzcibimpact/internal/export"
	"github.com/WangNatalie/dzcibimpact/internal/indicator"
	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/report"
)

var aestheticCmd = &cobra.Command{
	Use:   "aesthetic",
	Short: "Run the aesthetic quality indicator",
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

		areas, err := readAreas()
		if err != nil {
			return err
		}

		if err := st.Clear(ctx, model.Aesthetic); err != nil {
			return err
		}

		rows := indicator.Aesthetic(areas, ref)

		if err := st.PersistAesthetic(ctx, rows); err != nil {
			return err
		}

		csvPath, reportPath, err := outputPaths(model.Aesthetic)
		if err != nil {
			return err
		}

		persisted, err := st.ListAesthetic(ctx)
		if err != nil {
			return err
		}
		if err := export.WriteAesthetic(csvPath, persisted); err != nil {
			return err
		}

		return emitReport(report.Aesthetic(studyArea(), now(), persisted), reportPath)
	},
}

func init() {
	aestheticCmd.Flags().StringVar(&flagLookupCSV, "lookup-csv", "", "path to SOLRIS lookup CSV (default from config)")
	aestheticCmd.Flags().StringVar(&flagAreaXLSX, "xlsx", "", "path to polygon area summary XLSX (default from config)")
	aestheticCmd.Flags().StringVar(&flagStudyArea, "study-area", "", "study area name (default from config)")
	rootCmd.AddCommand(aestheticCmd)
}
