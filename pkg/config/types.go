package config

import "time"

// Config is the root configuration structure
type Config struct {
	HTTP        HTTPClientConfig   `yaml:"http"`
	Cache       CacheConfig        `yaml:"cache"`
	Report      ReportConfig       `yaml:"report"`
	Monitor     MonitorConfig      `yaml:"monitor"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	Logging     LoggingConfig      `yaml:"logging"`
	Instruments []InstrumentConfig `yaml:"instruments"`
}

// HTTPClientConfig configures the shared outbound HTTP client
type HTTPClientConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
}

// CacheConfig configures the per-source result cache
type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

// ReportConfig configures the periodic price report loop
type ReportConfig struct {
	Interval Duration `yaml:"interval"`
}

// MonitorConfig configures the catalog snapshot monitor
type MonitorConfig struct {
	Enabled      bool     `yaml:"enabled"`
	APIURL       string   `yaml:"api_url"`
	PollInterval Duration `yaml:"poll_interval"`
	Retention    Duration `yaml:"retention"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// InstrumentConfig describes one tracked instrument and the sources
// whose consensus produces its price.
type InstrumentConfig struct {
	Symbol  string         `yaml:"symbol"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig configures a single price source. The fields a source
// requires depend on its type; Sources is only consulted by the
// "aggregate" type and may nest further aggregates.
type SourceConfig struct {
	Type     string         `yaml:"type"`
	Name     string         `yaml:"name"`
	Symbol   string         `yaml:"symbol"`
	Metal    string         `yaml:"metal"`
	Currency string         `yaml:"currency"`
	APIURL   string         `yaml:"api_url"`
	Sources  []SourceConfig `yaml:"sources"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
