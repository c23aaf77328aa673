package main

import (
	"github.com/spf13/cobra"

	"github.com/WangNatalie/dzcibimpact/internal/export"
	"github.com/WangNatalie/dzcibimpact/internal/indicator"
	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/report"
	"github.com/WangNatalie/dzcibimpact/internal/source"
)

var flagWaterCSV string

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Run the water filtration indicator",
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

		wetlandValues, err := source.ReadWetlandValues(or(flagWaterCSV, cfg.Sources.WaterCSV))
		if err != nil {
			return err
		}

		if err := st.Clear(ctx, model.Water); err != nil {
			return err
		}

		rows := indicator.Water(areas, ref, wetlandValues)

		if err := st.PersistWater(ctx, rows); err != nil {
			return err
		}

		csvPath, reportPath, err := outputPaths(model.Water)
		if err != nil {
			return err
		}

		persisted, err := st.ListWater(ctx)
		if err != nil {
			return err
		}
		if err := export.WriteWater(csvPath, persisted); err != nil {
			return err
		}

		summary, err := st.WaterSummary(ctx)
		if err != nil {
			return err
		}
		return emitReport(report.Water(studyArea(), now(), summary), reportPath)
	},
}

func init() {
	waterCmd.Flags().StringVar(&flagLookupCSV, "lookup-csv", "", "path to SOLRIS lookup CSV (default from config)")
	waterCmd.Flags().StringVar(&flagAreaXLSX, "xlsx", "", "path to polygon area summary XLSX (default from config)")
	waterCmd.Flags().StringVar(&flagStudyArea, "study-area", "", "study area name (default from config)")
	waterCmd.Flags().StringVar(&flagWaterCSV, "water-csv", "", "path to wetland value CSV (default from config)")
	rootCmd.AddCommand(waterCmd)
}
