// Package store persists the lookup table and the four indicator result sets
// in PostgreSQL. It owns the referential-integrity-preserving reload protocol
// and the grouped read-back queries the reports are built from.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/WangNatalie/dzcibimpact/internal/db"
	"github.com/WangNatalie/dzcibimpact/internal/model"
)

const lookupTable = "solris_lookup"

// PostgresStore implements persistence over a pgx connection pool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool. Connection
// failures are fatal; the wrap classifies the cause for the operator.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: create pool (%s)", describeConnFailure(err))
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrapf(err, "postgres: ping (%s)", describeConnFailure(err))
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewWithPool wraps an existing pool. Used by tests with pgxmock.
func NewWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

const lookupDDL = `
CREATE TABLE IF NOT EXISTS solris_lookup (
	solris_code INTEGER PRIMARY KEY,
	solris_class TEXT NOT NULL,
	biocapacity_category TEXT NOT NULL,
	biocapacity_conversion_factor DECIMAL(4,2) NOT NULL,
	lulc_category TEXT NOT NULL,
	agc_tc_ha DECIMAL(8,4) NOT NULL,
	bgc_tc_ha DECIMAL(8,4) NOT NULL,
	soc_tc_ha DECIMAL(8,4) NOT NULL,
	deoc_tc_ha DECIMAL(8,4) NOT NULL,
	naturalness DECIMAL(4,2) NOT NULL,
	description TEXT
)`

// resultDDL returns the CREATE TABLE statement for one indicator's result
// table. solris_code is nullable on purpose: rows computed for a code with no
// reference entry persist with a NULL code, which the foreign key admits.
func resultDDL(ind model.Indicator) string {
	switch ind {
	case model.Biocapacity:
		return `
CREATE TABLE IF NOT EXISTS biocapacity_results (
	id SERIAL PRIMARY KEY,
	solris_code INTEGER,
	solris_class TEXT NOT NULL,
	biocapacity_category TEXT NOT NULL,
	area_hectares DECIMAL(12,4) NOT NULL,
	biocapacity_conversion_factor DECIMAL(4,2),
	biocapacity_gha DECIMAL(12,4),
	percentage_of_total DECIMAL(8,4),
	FOREIGN KEY(solris_code) REFERENCES solris_lookup(solris_code)
)`
	case model.Carbon:
		return `
CREATE TABLE IF NOT EXISTS carbon_sequestration_results (
	id SERIAL PRIMARY KEY,
	solris_code INTEGER,
	solris_class TEXT NOT NULL,
	area_hectares DECIMAL(12,4) NOT NULL,
	agc_tc_ha DECIMAL(8,4),
	bgc_tc_ha DECIMAL(8,4),
	soc_tc_ha DECIMAL(8,4),
	deoc_tc_ha DECIMAL(8,4),
	total_carbon_tc DECIMAL(12,4) NOT NULL,
	ssc DECIMAL(12,4) NOT NULL,
	ssc_density DECIMAL(12,6) NOT NULL,
	percentage_of_total DECIMAL(8,4) NOT NULL,
	FOREIGN KEY(solris_code) REFERENCES solris_lookup(solris_code)
)`
	case model.Water:
		return `
CREATE TABLE IF NOT EXISTS water_filtration_results (
	id SERIAL PRIMARY KEY,
	solris_code INTEGER,
	solris_class TEXT NOT NULL,
	area_hectares DECIMAL(12,4) NOT NULL,
	wf_value_per_ha DECIMAL(12,4) NOT NULL,
	total_wf_value DECIMAL(14,4) NOT NULL,
	percentage_of_total DECIMAL(8,4) NOT NULL,
	FOREIGN KEY(solris_code) REFERENCES solris_lookup(solris_code)
)`
	case model.Aesthetic:
		return `
CREATE TABLE IF NOT EXISTS aesthetic_quality_results (
	id SERIAL PRIMARY KEY,
	solris_code INTEGER,
	solris_class TEXT NOT NULL,
	area_hectares DECIMAL(12,4) NOT NULL,
	naturalness_score DECIMAL(4,2) NOT NULL,
	rarity_score INTEGER NOT NULL,
	aesthetic_quality_score DECIMAL(5,2) NOT NULL,
	FOREIGN KEY(solris_code) REFERENCES solris_lookup(solris_code)
)`
	default:
		return ""
	}
}

// EnsureSchema creates the lookup table and every result table. Idempotent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, lookupDDL); err != nil {
		return eris.Wrap(err, "postgres: create lookup table")
	}
	for _, ind := range model.Indicators {
		if _, err := s.pool.Exec(ctx, resultDDL(ind)); err != nil {
			return eris.Wrapf(err, "postgres: create %s", ind.Table())
		}
	}
	return nil
}

var lookupColumns = []string{
	"solris_code", "solris_class", "biocapacity_category",
	"biocapacity_conversion_factor", "lulc_category",
	"agc_tc_ha", "bgc_tc_ha", "soc_tc_ha", "deoc_tc_ha",
	"naturalness", "description",
}

// ReplaceReference wholesale-replaces the lookup table inside one
// transaction. If the initial clear is blocked by dependent result rows, the
// four result tables are truncated (each independently possibly-absent) and
// the clear is retried exactly once; any other failure re-raises. The single
// transaction boundary means a crash mid-protocol rolls everything back.
func (s *PostgresStore) ReplaceReference(ctx context.Context, entries []model.ReferenceEntry) error {
	log := zap.L().With(zap.String("component", "store"))

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin reference reload")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := execInSavepoint(ctx, tx, "clear_lookup", `DELETE FROM solris_lookup`); err != nil {
		if !isFKViolation(err) {
			return eris.Wrap(err, "postgres: clear lookup table")
		}

		log.Info("lookup table still referenced, clearing dependent result tables")
		for _, ind := range model.Indicators {
			if err := truncateIfExists(ctx, tx, ind.Table()); err != nil {
				return eris.Wrapf(err, "postgres: clear dependent %s", ind.Table())
			}
		}

		if err := execInSavepoint(ctx, tx, "clear_lookup_retry", `DELETE FROM solris_lookup`); err != nil {
			return eris.Wrap(err, "postgres: clear lookup table after cascade")
		}
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.Code, e.Class, e.BiocapacityCategory,
			e.ConversionFactor, e.LULCCategory,
			e.AGC, e.BGC, e.SOC, e.DeOC,
			e.Naturalness, e.Description,
		})
	}
	n, err := db.CopyFromTx(ctx, tx, lookupTable, lookupColumns, rows)
	if err != nil {
		return eris.Wrap(err, "postgres: insert lookup entries")
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit reference reload")
	}

	log.Info("lookup table replaced", zap.Int64("entries", n))
	return nil
}

// LoadReference reads the full lookup table back, ordered by code.
func (s *PostgresStore) LoadReference(ctx context.Context) ([]model.ReferenceEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_code, solris_class, biocapacity_category,
		       biocapacity_conversion_factor, lulc_category,
		       agc_tc_ha, bgc_tc_ha, soc_tc_ha, deoc_tc_ha,
		       naturalness, COALESCE(description, '')
		FROM solris_lookup ORDER BY solris_code`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load lookup table")
	}
	defer rows.Close()

	var entries []model.ReferenceEntry
	for rows.Next() {
		var e model.ReferenceEntry
		if err := rows.Scan(&e.Code, &e.Class, &e.BiocapacityCategory,
			&e.ConversionFactor, &e.LULCCategory,
			&e.AGC, &e.BGC, &e.SOC, &e.DeOC,
			&e.Naturalness, &e.Description); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lookup entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: iterate lookup entries")
}

// execInSavepoint runs one statement inside a savepoint so a constraint
// failure does not poison the surrounding transaction.
func execInSavepoint(ctx context.Context, tx execer, name, sql string) error {
	if _, err := tx.Exec(ctx, "SAVEPOINT "+name); err != nil {
		return eris.Wrapf(err, "postgres: savepoint %s", name)
	}
	if _, err := tx.Exec(ctx, sql); err != nil {
		if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return eris.Wrapf(rbErr, "postgres: rollback to savepoint %s", name)
		}
		return err
	}
	if _, err := tx.Exec(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return eris.Wrapf(err, "postgres: release savepoint %s", name)
	}
	return nil
}

// truncateIfExists empties a result table, tolerating its absence.
func truncateIfExists(ctx context.Context, tx execer, table string) error {
	err := execInSavepoint(ctx, tx, "truncate_"+table, "TRUNCATE TABLE "+table)
	if err != nil && isUndefinedTable(err) {
		return nil
	}
	return err
}

// execer is the slice of pgx.Tx the protocol helpers need.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
