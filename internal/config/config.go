package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/wpexport/internal/normalize"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ErrNotFound is returned when no configuration file could be located.
var ErrNotFound = errors.New("no wpexport configuration file found")

// searchNames are tried in the working directory before the config dir.
var searchNames = []string{"wpexport.yaml", "wpexport.yml", "wpexport.json"}

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Config is the on-disk configuration. JSON files decode too since YAML is a
// superset of JSON, including PascalCase keys such as "Host" or
// "ArchiveOutputFilePath".
type Config struct {
	Driver      string `yaml:"driver"`
	Host        string `yaml:"host"`
	Database    string `yaml:"database"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TLS         string `yaml:"tls"`
	TablePrefix string `yaml:"table_prefix"`

	ContentOutputDirectory string   `yaml:"content_output_directory"`
	ArchiveOutputFilePath  string   `yaml:"archive_output_file_path"`
	Statuses               []string `yaml:"statuses"`
	Jobs                   int      `yaml:"jobs"`

	Patterns normalize.PatternTable `yaml:"patterns"`

	// Path is where the configuration was read from.
	Path string `yaml:"-"`
}

// envOverrides maps environment variables onto connection fields.
// Credentials usually live in .env rather than the committed config file.
func (c *Config) envOverrides() map[string]*string {
	return map[string]*string{
		"WPEXPORT_DRIVER":   &c.Driver,
		"WPEXPORT_HOST":     &c.Host,
		"WPEXPORT_DATABASE": &c.Database,
		"WPEXPORT_USERNAME": &c.Username,
		"WPEXPORT_PASSWORD": &c.Password,
	}
}

// Resolve returns the configuration path to load. An explicit path wins,
// then $WPEXPORT_CONFIG, then wpexport.{yaml,yml,json} in the working
// directory, then config.yaml in Dir().
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("WPEXPORT_CONFIG"); env != "" {
		return env, nil
	}

	candidates := slices.Clone(searchNames)
	if dir := Dir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Load resolves, reads, decodes and validates the configuration.
func Load(explicit string) (*Config, error) {
	path, err := Resolve(explicit)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes configuration bytes, applies environment overrides and
// defaults, and validates the result. Keys match case-insensitively with
// underscores optional (ContentOutputDirectory, Needle); unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if doc.Kind != 0 {
		canonicalizeKeys(&doc)
		canonical, err := yaml.Marshal(&doc)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(canonical))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	for key, field := range cfg.envOverrides() {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMySQL
	}
	if c.TablePrefix == "" {
		c.TablePrefix = "wp_"
	}
	if c.ContentOutputDirectory == "" {
		c.ContentOutputDirectory = "content"
	}
	if len(c.Statuses) == 0 {
		c.Statuses = []string{"publish"}
	}
	if c.Jobs <= 0 {
		c.Jobs = 4
	}
}

// Validate reports the first problem that would make an export run fail.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMySQL:
		if c.Host == "" {
			return errors.New("host is required for the mysql driver")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported driver %q (want %s or %s)", c.Driver, DriverMySQL, DriverSQLite)
	}

	if c.Database == "" {
		return errors.New("database is required")
	}
	if !tablePrefixPattern.MatchString(c.TablePrefix) {
		return fmt.Errorf("table_prefix %q may only contain letters, digits and underscores", c.TablePrefix)
	}

	for category, patterns := range c.Patterns {
		for i, p := range patterns {
			if p.Needle == "" {
				return fmt.Errorf("patterns.%s[%d]: needle must not be empty", category, i)
			}
		}
	}
	return nil
}
