package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DavidGamba/go-getoptions"
	"gopkg.in/yaml.v3"

	"github.com/TDiblik/as2org/as2org"
	"github.com/TDiblik/as2org/dataset"
	"github.com/TDiblik/as2org/logging"
)

const (
	DefaultInputFile  = "resources/as2org/uncompressed/20190701.as-org2info.txt"
	DefaultOutputFile = "parsed_20190701.as-org2info.txt"

	envPrefix = "AS2ORG_"
)

// ErrHelp is returned by Load when usage was requested.
var ErrHelp = errors.New("help requested")

// Config holds the settings of one conversion run.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	InputFile    string `yaml:"input_file"`
	OutputFile   string `yaml:"output_file"`
	DownloadDir  string `yaml:"download_dir"`
	Charset      string `yaml:"charset"`
	JSONFile     string `yaml:"json_file"`
	SQLiteFile   string `yaml:"sqlite_file"`
	LegacyHeader bool   `yaml:"legacy_header"`
}

func Default() *Config {
	return &Config{
		LogLevel:    logging.LevelWarn,
		InputFile:   DefaultInputFile,
		OutputFile:  DefaultOutputFile,
		DownloadDir: ".",
		Charset:     dataset.CharsetUTF8,
	}
}

// Load resolves the configuration from defaults, an optional YAML file,
// AS2ORG_* environment variables and command line flags, in increasing
// order of precedence.
func Load(args []string) (*Config, error) {
	flags := Default()
	var configPath string
	var help bool
	opt := newOptionSet(flags, &configPath, &help)

	remaining, err := opt.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", as2org.ErrConfig, err)
	}
	if help {
		return nil, ErrHelp
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("%w: unrecognized arguments %v", as2org.ErrConfig, remaining)
	}

	cfg := Default()
	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()

	if opt.Called("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if opt.Called("input-file") {
		cfg.InputFile = flags.InputFile
	}
	if opt.Called("output-file") {
		cfg.OutputFile = flags.OutputFile
	}
	if opt.Called("download-dir") {
		cfg.DownloadDir = flags.DownloadDir
	}
	if opt.Called("charset") {
		cfg.Charset = flags.Charset
	}
	if opt.Called("json-file") {
		cfg.JSONFile = flags.JSONFile
	}
	if opt.Called("sqlite-file") {
		cfg.SQLiteFile = flags.SQLiteFile
	}
	if opt.Called("legacy-header") {
		cfg.LegacyHeader = flags.LegacyHeader
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Usage returns the command line help.
func Usage() string {
	var configPath string
	var help bool
	return newOptionSet(Default(), &configPath, &help).Help()
}

func newOptionSet(cfg *Config, configPath *string, help *bool) *getoptions.GetOpt {
	opt := getoptions.New()
	opt.Self("as2org", "Convert CAIDA AS2ORG data into a flattened out structure keyed by organization name.")
	opt.BoolVar(help, "help", false, opt.Alias("h", "?"))
	opt.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, opt.Alias("l"),
		opt.Description("Log level to use: DEBUG, INFO, WARN or ERROR."))
	opt.StringVar(&cfg.InputFile, "input-file", cfg.InputFile, opt.Alias("i"),
		opt.Description("Input CAIDA file (path or http(s) URL) to process."))
	opt.StringVar(&cfg.OutputFile, "output-file", cfg.OutputFile, opt.Alias("o"),
		opt.Description("Output file to write to."))
	opt.StringVar(configPath, "config", "", opt.Alias("c"),
		opt.Description("Optional YAML configuration file."))
	opt.StringVar(&cfg.DownloadDir, "download-dir", cfg.DownloadDir,
		opt.Description("Directory remote inputs are downloaded to."))
	opt.StringVar(&cfg.Charset, "charset", cfg.Charset,
		opt.Description("Input charset: utf-8, latin1 or windows-1252."))
	opt.StringVar(&cfg.JSONFile, "json-file", "",
		opt.Description("Also write the groups as JSON to this file."))
	opt.StringVar(&cfg.SQLiteFile, "sqlite-file", "",
		opt.Description("Also write the groups to this SQLite database."))
	opt.BoolVar(&cfg.LegacyHeader, "legacy-header", false,
		opt.Description("Write the historical header with locations and friendly_names swapped."))
	return opt
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: unable to read %s: %v", as2org.ErrConfig, path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: unable to parse %s: %v", as2org.ErrConfig, path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	c.LogLevel = getEnv(envPrefix+"LOG_LEVEL", c.LogLevel)
	c.InputFile = getEnv(envPrefix+"INPUT_FILE", c.InputFile)
	c.OutputFile = getEnv(envPrefix+"OUTPUT_FILE", c.OutputFile)
	c.DownloadDir = getEnv(envPrefix+"DOWNLOAD_DIR", c.DownloadDir)
	c.Charset = getEnv(envPrefix+"CHARSET", c.Charset)
	c.JSONFile = getEnv(envPrefix+"JSON_FILE", c.JSONFile)
	c.SQLiteFile = getEnv(envPrefix+"SQLITE_FILE", c.SQLiteFile)
	c.LegacyHeader = getEnvBool(envPrefix+"LEGACY_HEADER", c.LegacyHeader)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.InputFile) == "" {
		errs = append(errs, "no input file specified")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		errs = append(errs, "no output file specified")
	}
	if _, err := logging.NormalizeLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := dataset.LookupCharset(c.Charset); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", as2org.ErrConfig, strings.Join(errs, "; "))
	}
	return nil
}

// Header returns the output header selected by the configuration.
func (c *Config) Header() []string {
	if c.LegacyHeader {
		return as2org.LegacyHeader
	}
	return as2org.Header
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
