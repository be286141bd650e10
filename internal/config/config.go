package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment override (HDI_PATHS_RAW_DIR, ...)
const EnvPrefix = "HDI"

// Config represents the complete application configuration
type Config struct {
	Paths         PathsConfig         `yaml:"paths" envconfig:"PATHS"`
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Input         InputConfig         `yaml:"input" envconfig:"INPUT"`
	Analysis      AnalysisConfig      `yaml:"analysis" envconfig:"ANALYSIS"`
	Export        ExportConfig        `yaml:"export" envconfig:"EXPORT"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
}

// PathsConfig contains file system paths configuration.
// Relative directories are resolved against BaseDir, or the working directory when empty.
type PathsConfig struct {
	BaseDir   string `yaml:"base_dir" envconfig:"BASE_DIR"`
	RawDir    string `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// InputConfig controls how the input table is located and read
type InputConfig struct {
	Extensions []string `yaml:"extensions" envconfig:"EXTENSIONS" validate:"required,min=1,dive,startswith=."`
	Delimiter  string   `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
}

// AnalysisConfig tunes the analysis engine
type AnalysisConfig struct {
	TopN int `yaml:"top_n" envconfig:"TOP_N" validate:"min=1,max=1000"`
}

// ExportConfig selects the output sinks
type ExportConfig struct {
	CSV          bool   `yaml:"csv" envconfig:"CSV"`
	Delimiter    string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	BOM          bool   `yaml:"bom" envconfig:"BOM"`
	Excel        bool   `yaml:"excel" envconfig:"EXCEL"`
	ExcelFile    string `yaml:"excel_file" envconfig:"EXCEL_FILE" validate:"omitempty,endswith=.xlsx"`
	DatabasePath string `yaml:"database_path" envconfig:"DATABASE_PATH"`
	Charts       bool   `yaml:"charts" envconfig:"CHARTS"`
	Manifest     bool   `yaml:"manifest" envconfig:"MANIFEST"`
}

// ObservabilityConfig holds optional run metrics and trace outputs
type ObservabilityConfig struct {
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// HDI_* environment variables, in increasing order of precedence.
// An empty configFile searches the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without an HDI_* variable keep their current value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalizes values
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	for i, ext := range c.Input.Extensions {
		c.Input.Extensions[i] = strings.ToLower(strings.TrimSpace(ext))
	}

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required when output is %q", c.Logging.Output)
	}

	if c.Export.Excel && c.Export.ExcelFile == "" {
		return fmt.Errorf("export.excel_file is required when excel export is enabled")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"hdi.yaml",
		"configs/hdi.yaml",
		"../configs/hdi.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			RawDir:    DefaultRawDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Input: InputConfig{
			Extensions: []string{".csv", ".xlsx"},
			Delimiter:  ",",
		},
		Analysis: AnalysisConfig{
			TopN: DefaultTopN,
		},
		Export: ExportConfig{
			CSV:       true,
			Delimiter: ",",
			ExcelFile: DefaultExcelFile,
			Manifest:  true,
		},
	}
}
