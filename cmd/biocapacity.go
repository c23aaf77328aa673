package main

import (
	"github.com/spf13/cobra"

	"github.com/WangNatalie/dzcibimpact/internal/export"
	"github.com/WangNatalie/dzcibimpact/internal/indicator"
	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/report"
)

var biocapacityCmd = &cobra.Command{
	Use:   "biocapacity",
	Short: "Run the biocapacity indicator",
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

		if err := st.Clear(ctx, model.Biocapacity); err != nil {
			return err
		}

		rows, missing := indicator.Biocapacity(areas, ref)
		warnMissing(model.Biocapacity, missing)

		if err := st.PersistBiocapacity(ctx, rows); err != nil {
			return err
		}

		csvPath, reportPath, err := outputPaths(model.Biocapacity)
		if err != nil {
			return err
		}

		persisted, err := st.ListBiocapacity(ctx)
		if err != nil {
			return err
		}
		if err := export.WriteBiocapacity(csvPath, persisted); err != nil {
			return err
		}

		summary, err := st.BiocapacitySummary(ctx)
		if err != nil {
			return err
		}
		return emitReport(report.Biocapacity(studyArea(), now(), summary), reportPath)
	},
}

func init() {
	biocapacityCmd.Flags().StringVar(&flagLookupCSV, "lookup-csv", "", "path to SOLRIS lookup CSV (default from config)")
	biocapacityCmd.Flags().StringVar(&flagAreaXLSX, "xlsx", "", "path to polygon area summary XLSX (default from config)")
	biocapacityCmd.Flags().StringVar(&flagStudyArea, "study-area", "", "study area name (default from config)")
	rootCmd.AddCommand(biocapacityCmd)
}
