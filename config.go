package mlog

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Defaults applied by NewConfig and ConfigFromEnv.
const (
	DefaultName       = "default_logger"
	DefaultTextFormat = "{timestamp} - {name} - {level} - {message}"
	DefaultDateFormat = "2006-01-02 15:04:05"
)

// Config is the immutable settings bundle for one logger. Name doubles as
// the registry cache key. Build configs with NewConfig or ConfigFromEnv so
// validation runs before any sink exists.
type Config struct {
	Name       string
	Level      Level
	Target     Target
	TextFormat string
	DateFormat string
	Directory  string
	Filename   string
}

// ConfigOption customizes a Config during construction.
type ConfigOption func(*Config)

func WithLevel(l Level) ConfigOption       { return func(c *Config) { c.Level = l } }
func WithTarget(t Target) ConfigOption     { return func(c *Config) { c.Target = t } }
func WithTextFormat(f string) ConfigOption { return func(c *Config) { c.TextFormat = f } }
func WithDateFormat(f string) ConfigOption { return func(c *Config) { c.DateFormat = f } }
func WithDirectory(d string) ConfigOption  { return func(c *Config) { c.Directory = d } }
func WithFilename(f string) ConfigOption   { return func(c *Config) { c.Filename = f } }

// NewConfig builds a validated Config. Defaults: level INFO, target CONSOLE,
// the default text format template and date layout.
func NewConfig(name string, opts ...ConfigOption) (Config, error) {
	c := Config{
		Name:       name,
		Level:      LevelInfo,
		Target:     TargetConsole,
		TextFormat: DefaultTextFormat,
		DateFormat: DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks construction invariants: non-empty name, and for file
// backed targets both directory and filename present.
func (c Config) Validate() error {
	if c.Name == "" {
		return invalidConfigf("name", "must not be empty")
	}
	if c.Target.needsFile() {
		if c.Directory == "" {
			return invalidConfigf("directory", "must be provided when target is %s", c.Target)
		}
		if c.Filename == "" {
			return invalidConfigf("filename", "must be provided when target is %s", c.Target)
		}
	}
	return nil
}

// FullPath returns directory/filename for file backed targets, or "" when
// the target is CONSOLE or either part is missing.
func (c Config) FullPath() string {
	if !c.Target.needsFile() || c.Directory == "" || c.Filename == "" {
		return ""
	}
	return filepath.Join(c.Directory, c.Filename)
}

// envConfig maps the documented environment variables onto a Config.
type envConfig struct {
	Name       string `env:"LOGGER_NAME"`
	Level      string `env:"LOGGER_LEVEL" env-default:"INFO"`
	Target     string `env:"LOGGER_TARGET" env-default:"CONSOLE"`
	TextFormat string `env:"LOGGER_FORMAT"`
	DateFormat string `env:"LOGGER_DATEFMT"`
	Directory  string `env:"LOGGER_DIR"`
	Filename   string `env:"LOGGER_FILENAME"`
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for anything unset. An empty LOGGER_NAME is treated as unset;
// LOGGER_FORMAT and LOGGER_DATEFMT are preserved verbatim whenever the
// variable is present, including the empty string. Invalid level or target
// names fail with ErrInvalidConfiguration.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		return Config{}, invalidConfigf("environment", "%v", err)
	}

	name := ec.Name
	if name == "" {
		name = DefaultName
	}

	level, err := ParseLevel(ec.Level)
	if err != nil {
		return Config{}, err
	}
	target, err := ParseTarget(ec.Target)
	if err != nil {
		return Config{}, err
	}

	opts := []ConfigOption{WithLevel(level), WithTarget(target)}
	// Format strings keep whatever the environment says, empty included, so
	// presence has to be checked rather than the value.
	if _, ok := os.LookupEnv("LOGGER_FORMAT"); ok {
		opts = append(opts, WithTextFormat(ec.TextFormat))
	}
	if _, ok := os.LookupEnv("LOGGER_DATEFMT"); ok {
		opts = append(opts, WithDateFormat(ec.DateFormat))
	}
	if ec.Directory != "" {
		opts = append(opts, WithDirectory(ec.Directory))
	}
	if ec.Filename != "" {
		opts = append(opts, WithFilename(ec.Filename))
	}
	return NewConfig(name, opts...)
}
