package serve

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoAddr is returned when Config.Addr is empty.
var ErrNoAddr = errors.New("serve: addr must not be empty")

// Duration wraps time.Duration so YAML values can be written as Go
// duration strings ("30s", "1m30s") or as plain integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler. Integer scalars are tried
// first because yaml happily decodes them into strings too.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("serve: invalid duration value on line %d", value.Line)
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("serve: invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config describes the listening socket and server timeouts.
type Config struct {
	// Addr is the TCP address to listen on, in net.Listen form
	// (":8080", "127.0.0.1:8080").
	Addr string `yaml:"addr"`

	// MaxConnections caps the number of simultaneously accepted
	// connections. Zero means no cap.
	MaxConnections int `yaml:"max_connections"`

	// ReadTimeout is the maximum duration for reading the entire
	// request, including the body. Zero means no timeout.
	ReadTimeout Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. Zero means no timeout.
	WriteTimeout Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled. Zero means no timeout.
	IdleTimeout Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds how long Shutdown waits for in-flight
	// requests to finish. Zero means wait indefinitely.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns a Config with the default listen address and
// shutdown timeout.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: Duration(10 * time.Second),
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return ErrNoAddr
	}

	if c.MaxConnections < 0 {
		return fmt.Errorf("serve: max_connections must not be negative, got %d", c.MaxConnections)
	}

	for name, d := range map[string]Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("serve: %s must not be negative, got %s", name, d.Std())
		}
	}

	return nil
}

// LoadConfig reads a YAML configuration file, applies it over
// DefaultConfig, and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("serve: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
