package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WangNatalie/dzcibimpact/internal/cost"
	"github.com/WangNatalie/dzcibimpact/internal/export"
	"github.com/WangNatalie/dzcibimpact/internal/indicator"
	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/report"
	"github.com/WangNatalie/dzcibimpact/internal/source"
	"github.com/WangNatalie/dzcibimpact/internal/store"
)

var (
	flagSCCCSV       string
	flagStartYear    int
	flagEndYear      int
	flagDiscountRate float64
)

var carbonCmd = &cobra.Command{
	Use:   "carbon",
	Short: "Run the carbon sequestration indicator and the discounted cost projection",
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

		if err := st.Clear(ctx, model.Carbon); err != nil {
			return err
		}

		rows, missing := indicator.Carbon(areas, ref)
		warnMissing(model.Carbon, missing)

		if err := st.PersistCarbon(ctx, rows); err != nil {
			return err
		}

		csvPath, reportPath, err := outputPaths(model.Carbon)
		if err != nil {
			return err
		}

		persisted, err := st.ListCarbon(ctx)
		if err != nil {
			return err
		}
		if err := export.WriteCarbon(csvPath, persisted); err != nil {
			return err
		}

		summary, err := st.CarbonSummary(ctx)
		if err != nil {
			return err
		}
		if err := emitReport(report.Carbon(studyArea(), now(), summary), reportPath); err != nil {
			return err
		}

		return projectSocialCost(cmd, st)
	},
}

// projectSocialCost scales the annual SCC schedule by the run's aggregate
// social cost and writes the discounted series next to the result CSV.
func projectSocialCost(cmd *cobra.Command, st *store.PostgresStore) error {
	ctx := cmd.Context()

	totalSSC, err := st.TotalCarbonSSC(ctx)
	if err != nil {
		return err
	}

	schedule, err := source.ReadSCCSchedule(or(flagSCCCSV, cfg.Sources.SCCCSV))
	if err != nil {
		return err
	}

	startYear, endYear, rate := cfg.Projection.StartYear, cfg.Projection.EndYear, cfg.Projection.DiscountRate
	if cmd.Flags().Changed("start-year") {
		startYear = flagStartYear
	}
	if cmd.Flags().Changed("end-year") {
		endYear = flagEndYear
	}
	if cmd.Flags().Changed("discount-rate") {
		rate = flagDiscountRate
	}

	series, err := cost.Project(totalSSC, schedule, startYear, endYear, rate)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Export.Dir, model.Carbon.String(),
		fmt.Sprintf("discounted_ssc_%s.csv", strings.ReplaceAll(studyArea(), " ", "_")))
	return export.WriteProjection(path, series)
}

func init() {
	carbonCmd.Flags().StringVar(&flagLookupCSV, "lookup-csv", "", "path to SOLRIS lookup CSV (default from config)")
	carbonCmd.Flags().StringVar(&flagAreaXLSX, "xlsx", "", "path to polygon area summary XLSX (default from config)")
	carbonCmd.Flags().StringVar(&flagStudyArea, "study-area", "", "study area name (default from config)")
	carbonCmd.Flags().StringVar(&flagSCCCSV, "scc-csv", "", "path to annual SCC schedule CSV (default from config)")
	carbonCmd.Flags().IntVar(&flagStartYear, "start-year", 0, "projection start year (default from config)")
	carbonCmd.Flags().IntVar(&flagEndYear, "end-year", 0, "projection end year (default from config)")
	carbonCmd.Flags().Float64Var(&flagDiscountRate, "discount-rate", 0, "annual discount rate (default from config)")
	rootCmd.AddCommand(carbonCmd)
}
