// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Reference  ReferenceConfig  `yaml:"reference" mapstructure:"reference"`
	Sources    SourcesConfig    `yaml:"sources" mapstructure:"sources"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Projection ProjectionConfig `yaml:"projection" mapstructure:"projection"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the PostgreSQL backing store.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ReferenceConfig configures the SOLRIS lookup source. Overrides patch
// individual coefficient cells by code before loading, keyed
// "<code>" -> column -> value.
type ReferenceConfig struct {
	CSVPath   string                        `yaml:"csv_path" mapstructure:"csv_path"`
	Overrides map[string]map[string]float64 `yaml:"overrides" mapstructure:"overrides"`
}

// SourcesConfig holds the paths of the remaining tabular inputs.
type SourcesConfig struct {
	AreaXLSX string `yaml:"area_xlsx" mapstructure:"area_xlsx"`
	WaterCSV string `yaml:"water_csv" mapstructure:"water_csv"`
	SCCCSV   string `yaml:"scc_csv" mapstructure:"scc_csv"`
}

// ReportConfig configures report rendering.
type ReportConfig struct {
	StudyArea string `yaml:"study_area" mapstructure:"study_area"`
}

// ProjectionConfig configures the discounted social-cost projection.
type ProjectionConfig struct {
	StartYear    int     `yaml:"start_year" mapstructure:"start_year"`
	EndYear      int     `yaml:"end_year" mapstructure:"end_year"`
	DiscountRate float64 `yaml:"discount_rate" mapstructure:"discount_rate"`
}

// ExportConfig configures CSV and report file output.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ParsedOverrides converts the string-keyed override map into code-keyed
// form, rejecting non-integer keys.
func (r ReferenceConfig) ParsedOverrides() (map[int]map[string]float64, error) {
	if len(r.Overrides) == 0 {
		return nil, nil
	}
	out := make(map[int]map[string]float64, len(r.Overrides))
	for key, fields := range r.Overrides {
		code, err := strconv.Atoi(key)
		if err != nil {
			return nil, eris.Wrapf(err, "config: bad override code %q", key)
		}
		out[code] = fields
	}
	return out, nil
}

// Validate checks the invariants every run depends on. Path existence is not
// checked here; the readers report missing files themselves.
func (c *Config) Validate() error {
	var problems []string

	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}
	if c.Store.MinConns > c.Store.MaxConns && c.Store.MaxConns > 0 {
		problems = append(problems, "store.min_conns must not exceed store.max_conns")
	}
	if c.Projection.EndYear < c.Projection.StartYear {
		problems = append(problems, "projection.end_year must not precede projection.start_year")
	}
	if c.Projection.DiscountRate < 0 {
		problems = append(problems, "projection.discount_rate must be >= 0")
	}
	if c.Report.StudyArea == "" {
		problems = append(problems, "report.study_area is required")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DZCIB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.database_url", "postgres://localhost:5432/carolinian_zone")
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("store.min_conns", 1)
	v.SetDefault("reference.csv_path", "solris_lookup.csv")
	v.SetDefault("sources.area_xlsx", "carolinian_polygon_summary.xlsx")
	v.SetDefault("sources.water_csv", "water_filtration_lookup.csv")
	v.SetDefault("sources.scc_csv", "annual-scc.csv")
	v.SetDefault("report.study_area", "carolinian_zone")
	v.SetDefault("projection.start_year", 2020)
	v.SetDefault("projection.end_year", 2080)
	v.SetDefault("projection.discount_rate", 0.02)
	v.SetDefault("export.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
