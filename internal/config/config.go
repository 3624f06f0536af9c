package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Chart  ChartConfig  `yaml:"chart" mapstructure:"chart"`
	View   ViewConfig   `yaml:"view" mapstructure:"view"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the boundary and metric sources loaded at startup.
// HeatmapPath holds the (State, Year) table behind the maps; ScatterPath
// holds the (State, Year, Group) table behind the scatter plot.
type DataConfig struct {
	BoundaryPath string `yaml:"boundary_path" mapstructure:"boundary_path"`
	HeatmapPath  string `yaml:"heatmap_path" mapstructure:"heatmap_path"`
	ScatterPath  string `yaml:"scatter_path" mapstructure:"scatter_path"`
	IDField      string `yaml:"id_field" mapstructure:"id_field"`
	NameField    string `yaml:"name_field" mapstructure:"name_field"`
	AbbrField    string `yaml:"abbr_field" mapstructure:"abbr_field"`
	AliasesPath  string `yaml:"aliases_path" mapstructure:"aliases_path"`
}

// ChartConfig configures chart presentation.
type ChartConfig struct {
	Density    string `yaml:"density" mapstructure:"density"`
	Width      int    `yaml:"width" mapstructure:"width"`
	Height     int    `yaml:"height" mapstructure:"height"`
	Projection string `yaml:"projection" mapstructure:"projection"`
}

// ViewConfig selects how the map toggle maps onto output slots.
type ViewConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

var (
	validModes     = map[string]bool{"split": true, "merged": true}
	validDensities = map[string]bool{"compact": true, "expanded": true}
)

// Load reads configuration from .env, file, and environment.
func Load() (*Config, error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LABORMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.boundary_path", "cb_2018_us_state_500k.shp")
	v.SetDefault("data.heatmap_path", "merged_data.csv")
	v.SetDefault("data.scatter_path", "merged_race_data.csv")
	v.SetDefault("data.id_field", "STATEFP")
	v.SetDefault("data.name_field", "NAME")
	v.SetDefault("data.abbr_field", "STUSPS")
	v.SetDefault("chart.density", "expanded")
	v.SetDefault("chart.projection", "albersUsa")
	v.SetDefault("view.mode", "merged")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks that enumerated settings hold known values and that the
// data sources are named.
func (c *Config) Validate() error {
	if !validModes[c.View.Mode] {
		return eris.Errorf("config: unknown view.mode %q (want split or merged)", c.View.Mode)
	}
	if !validDensities[c.Chart.Density] {
		return eris.Errorf("config: unknown chart.density %q (want compact or expanded)", c.Chart.Density)
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 {
		return eris.New("config: chart width and height must not be negative")
	}

	var missing []string
	if c.Data.BoundaryPath == "" {
		missing = append(missing, "data.boundary_path")
	}
	if c.Data.HeatmapPath == "" {
		missing = append(missing, "data.heatmap_path")
	}
	if c.Data.ScatterPath == "" {
		missing = append(missing, "data.scatter_path")
	}
	if c.Data.NameField == "" {
		missing = append(missing, "data.name_field")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
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
