package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Reading sources.
const (
	SourceStatic    = "static"
	SourceSimulated = "simulated"
)

const envPrefix = "blanket"

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"` // console | json
	HTTP      HTTPConfig      `mapstructure:"http"`
	DB        DBConfig        `mapstructure:"db"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Readings  ReadingsConfig  `mapstructure:"readings"`
	WS        WSConfig        `mapstructure:"ws"`
}

type HTTPConfig struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type DashboardConfig struct {
	Title    string       `mapstructure:"title"`
	Blower   SliderConfig `mapstructure:"blower"`
	Setpoint SliderConfig `mapstructure:"setpoint"`
	PowerOn  bool         `mapstructure:"power_on"`
}

type SliderConfig struct {
	Icon     string  `mapstructure:"icon"`
	Gradient string  `mapstructure:"gradient"`
	Min      float64 `mapstructure:"min"`
	Max      float64 `mapstructure:"max"`
	Step     float64 `mapstructure:"step"`
	Unit     string  `mapstructure:"unit"`
	Initial  float64 `mapstructure:"initial"`
}

type GaugeConfig struct {
	Key   string  `mapstructure:"key"`
	Label string  `mapstructure:"label"`
	Value float64 `mapstructure:"value"`
	Max   float64 `mapstructure:"max"`
}

type ReadingsConfig struct {
	Source       string        `mapstructure:"source"`
	Gauges       []GaugeConfig `mapstructure:"gauges"`
	HistoryLimit int           `mapstructure:"history_limit"`
	SimTick      time.Duration `mapstructure:"sim_tick"`
	SampleEvery  time.Duration `mapstructure:"sample_every"`
}

type WSConfig struct {
	ReadingsInterval time.Duration `mapstructure:"readings_interval"`
}

// Load reads configs/config.yml (or the file named by path) and BLANKET_*
// environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// PORT is honored as an alias, like most PaaS runtimes set it
	if port := os.Getenv("PORT"); port != "" {
		v.Set("http.port", port)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.path", "blanket.db")

	v.SetDefault("dashboard.title", "Blanket warmer 01")
	v.SetDefault("dashboard.power_on", true)
	v.SetDefault("dashboard.blower.icon", "/static/wind.svg")
	v.SetDefault("dashboard.blower.gradient", "lightblue, dodgerblue")
	v.SetDefault("dashboard.blower.min", 0)
	v.SetDefault("dashboard.blower.max", 100)
	v.SetDefault("dashboard.blower.step", 1)
	v.SetDefault("dashboard.blower.initial", 50)
	v.SetDefault("dashboard.setpoint.icon", "/static/fire.svg")
	v.SetDefault("dashboard.setpoint.gradient", "orange, red")
	v.SetDefault("dashboard.setpoint.min", 36)
	v.SetDefault("dashboard.setpoint.max", 40)
	v.SetDefault("dashboard.setpoint.step", 1)
	v.SetDefault("dashboard.setpoint.unit", "°C")
	v.SetDefault("dashboard.setpoint.initial", 50)

	v.SetDefault("readings.source", SourceStatic)
	v.SetDefault("readings.gauges", gaugeDefaults())
	v.SetDefault("readings.history_limit", 8)
	v.SetDefault("readings.sim_tick", time.Second)
	v.SetDefault("readings.sample_every", 5*time.Minute)

	v.SetDefault("ws.readings_interval", 2*time.Second)
}

// DefaultGauges are the monitoring dials shown when nothing is configured.
func DefaultGauges() []GaugeConfig {
	return []GaugeConfig{
		{Key: "blanket_avg", Label: "Suhu Rata-Rata Selimut", Value: 37, Max: 60},
		{Key: "heater", Label: "Suhu Pemanas", Value: 50, Max: 60},
		{Key: "body", Label: "Suhu Tubuh", Value: 36, Max: 60},
	}
}

func gaugeDefaults() []map[string]any {
	out := make([]map[string]any, 0, 3)
	for _, g := range DefaultGauges() {
		out = append(out, map[string]any{"key": g.Key, "label": g.Label, "value": g.Value, "max": g.Max})
	}
	return out
}

// Validate rejects configurations the dashboard cannot render.
func (c *Config) Validate() error {
	switch c.Readings.Source {
	case SourceStatic, SourceSimulated:
	default:
		return fmt.Errorf("config param readings.source must be %q or %q, got %q", SourceStatic, SourceSimulated, c.Readings.Source)
	}
	for _, s := range []struct {
		name string
		cfg  SliderConfig
	}{{"blower", c.Dashboard.Blower}, {"setpoint", c.Dashboard.Setpoint}} {
		if s.cfg.Max <= s.cfg.Min {
			return fmt.Errorf("config param dashboard.%s: max must be > min", s.name)
		}
		if s.cfg.Step < 0 {
			return fmt.Errorf("config param dashboard.%s.step must be >= 0", s.name)
		}
	}
	if len(c.Readings.Gauges) == 0 {
		return errors.New("config param readings.gauges must list at least one gauge")
	}
	for i, g := range c.Readings.Gauges {
		if g.Key == "" {
			return fmt.Errorf("config param readings.gauges[%d].key is required", i)
		}
		if g.Max <= 0 {
			return fmt.Errorf("config param readings.gauges[%d].max must be > 0", i)
		}
	}
	if c.Readings.HistoryLimit <= 0 {
		return errors.New("config param readings.history_limit must be > 0")
	}
	if c.Readings.Source == SourceSimulated && c.Readings.SimTick <= 0 {
		return errors.New("config param readings.sim_tick must be > 0")
	}
	return nil
}
