package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/reference"
	"github.com/WangNatalie/dzcibimpact/internal/source"
	"github.com/WangNatalie/dzcibimpact/internal/store"
)

// Shared flags; each is resolved against the config default when empty.
var (
	flagLookupCSV string
	flagAreaXLSX  string
	flagStudyArea string
)

// openStore connects to the backing store and ensures the schema exists.
func openStore(ctx context.Context) (*store.PostgresStore, error) {
	st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// reloadReference loads the lookup CSV, replaces the persisted reference set,
// and returns the code-keyed map the calculators join against.
func reloadReference(ctx context.Context, st *store.PostgresStore) (map[int]model.ReferenceEntry, error) {
	path := or(flagLookupCSV, cfg.Reference.CSVPath)

	table, err := source.ReadCSV(path)
	if err != nil {
		return nil, err
	}

	overrides, err := cfg.Reference.ParsedOverrides()
	if err != nil {
		return nil, err
	}

	res, err := reference.Load(table, reference.Overrides(overrides))
	if err != nil {
		return nil, err
	}

	if err := st.ReplaceReference(ctx, res.Entries); err != nil {
		return nil, err
	}

	entries, err := st.LoadReference(ctx)
	if err != nil {
		return nil, err
	}
	return model.IndexByCode(entries), nil
}

// readAreas reads and returns the raw polygon area rows.
func readAreas() ([]model.AreaRow, error) {
	return source.ReadAreaXLSX(or(flagAreaXLSX, cfg.Sources.AreaXLSX))
}

// warnMissing logs the unmatched land-cover codes of a code-join run.
func warnMissing(ind model.Indicator, missing []int) {
	if len(missing) == 0 {
		return
	}
	zap.L().Warn("missing lookup entries for SOLRIS codes",
		zap.String("indicator", ind.String()),
		zap.Ints("codes", missing),
	)
}

// outputPaths returns the CSV export and report paths for an indicator run,
// creating the per-indicator directory.
func outputPaths(ind model.Indicator) (csvPath, reportPath string, err error) {
	area := studyArea()
	dir := filepath.Join(cfg.Export.Dir, ind.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", eris.Wrapf(err, "create output dir %s", dir)
	}
	csvPath = filepath.Join(dir, fmt.Sprintf("%s_results_%s.csv", ind, area))
	reportPath = filepath.Join(dir, fmt.Sprintf("%s_report_%s.txt", ind, strings.ReplaceAll(area, " ", "_")))
	return csvPath, reportPath, nil
}

// emitReport prints the rendered report and saves a copy next to the CSV.
func emitReport(text, path string) error {
	fmt.Println(text)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return eris.Wrapf(err, "write report %s", path)
	}
	return nil
}

func studyArea() string {
	return or(flagStudyArea, cfg.Report.StudyArea)
}

func or(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

var now = time.Now
