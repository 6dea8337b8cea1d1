package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid configuration")
)

// Output formats.
const (
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatArrow = "arrow"
)

// Config holds every setting of an analysis run, populated from a YAML file.
type Config struct {
	WageLevel  domain.WageLevel `yaml:"wage_level"`
	HourlyWage Amount           `yaml:"hourly_wage"`
	SOCCode    Scalar           `yaml:"soc_code"`
	DataYear   Scalar           `yaml:"data_year"`

	Paths    Paths    `yaml:"paths"`
	Output   Output   `yaml:"output"`
	Advanced Advanced `yaml:"advanced"`
	Logging  Logging  `yaml:"logging"`
	Metrics  Metrics  `yaml:"metrics"`

	// Root is the directory holding the configuration file. Relative paths
	// resolve against it.
	Root string `yaml:"-"`
}

type Paths struct {
	DataDir       string `yaml:"data_dir"`
	ALCFile       string `yaml:"alc_file"`
	GeographyFile string `yaml:"geography_file"`
	OutputDir     string `yaml:"output_dir"`
}

type Output struct {
	Format           string   `yaml:"format"`
	Columns          []string `yaml:"columns"`
	IncludeTimestamp bool     `yaml:"include_timestamp"`
}

type Advanced struct {
	CSVEncodings       []string `yaml:"csv_encodings"`
	ComparisonOperator string   `yaml:"comparison_operator"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics configures the optional Prometheus textfile export.
type Metrics struct {
	Textfile string `yaml:"textfile"`
}

// Scalar accepts any YAML scalar (string or number) as text, so
// data_year: 2024 and data_year: "2024" decode the same way.
type Scalar string

func (s *Scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	if n.ShortTag() == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(strings.TrimSpace(n.Value))
	return nil
}

func (s Scalar) String() string { return string(s) }

// Amount is a YAML number. Non-numeric scalars decode without error but
// leave the amount invalid so validation can report the original text.
type Amount struct {
	Value float64
	Raw   string
	valid bool
}

func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	a.Raw = n.Value
	a.valid = false
	if n.Kind != yaml.ScalarNode {
		return nil
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
	default:
		return nil
	}
	var v float64
	if err := n.Decode(&v); err != nil {
		return nil
	}
	a.Value = v
	a.valid = true
	return nil
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64), valid: true}
}

// Positive reports whether the amount is a finite number above zero.
func (a Amount) Positive() bool {
	return a.valid && a.Value > 0 && !math.IsInf(a.Value, 0)
}

func (a Amount) String() string {
	if !a.valid {
		return a.Raw
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// DefaultEncodings is the geography-file encoding fallback order.
var DefaultEncodings = []string{"utf-8", "latin-1", "iso-8859-1", "cp1252", "windows-1252"}

// Default returns a Config with every optional setting filled in.
func Default() *Config {
	return &Config{
		Paths: Paths{
			DataDir:       "data",
			ALCFile:       "ALC_Export.csv",
			GeographyFile: "Geography.csv",
			OutputDir:     "output",
		},
		Output: Output{
			Format: FormatExcel,
		},
		Advanced: Advanced{
			CSVEncodings:       append([]string(nil), DefaultEncodings...),
			ComparisonOperator: string(domain.OpAtLeast),
		},
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, applying defaults for unset keys, and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML configuration: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration path: %w", err)
	}
	cfg.Root = filepath.Dir(abs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes and checks the settings that must hold before any
// data file is touched.
func (c *Config) Validate() error {
	level, err := domain.ParseWageLevel(string(c.WageLevel))
	if err != nil {
		return fmt.Errorf("%w: wage_level must be one of L1, L2, L3, L4 (got '%s')", ErrInvalid, strings.ToUpper(string(c.WageLevel)))
	}
	c.WageLevel = level

	if !c.HourlyWage.Positive() {
		return fmt.Errorf("%w: hourly_wage must be a positive number (got '%s')", ErrInvalid, c.HourlyWage)
	}
	if c.DataYear == "" {
		return fmt.Errorf("%w: data_year must be specified in config", ErrInvalid)
	}

	op, err := domain.ParseOperator(c.Advanced.ComparisonOperator)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	c.Advanced.ComparisonOperator = string(op)

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case FormatExcel, FormatCSV, FormatArrow:
	default:
		return fmt.Errorf("%w: output.format must be one of excel, csv, arrow (got '%s')", ErrInvalid, c.Output.Format)
	}

	if len(c.Advanced.CSVEncodings) == 0 {
		c.Advanced.CSVEncodings = append([]string(nil), DefaultEncodings...)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level must be one of debug, info, warn, error (got '%s')", ErrInvalid, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json (got '%s')", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// Operator returns the validated comparison operator.
func (c *Config) Operator() domain.Operator {
	return domain.Operator(c.Advanced.ComparisonOperator)
}

// Resolve turns a configured path into an absolute one, anchoring relative
// paths at Root.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Summary returns the human-readable lines printed after validation.
func (c *Config) Summary() []string {
	return []string{
		fmt.Sprintf("Hourly wage: $%s", c.HourlyWage),
		fmt.Sprintf("Wage level: %s (compares against %s column)", c.WageLevel, c.WageLevel.Column()),
		fmt.Sprintf("SOC code: %s", c.SOCCode),
		fmt.Sprintf("Data year: %s", c.DataYear),
	}
}
