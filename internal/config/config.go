package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"crudgen/internal/logging"
)

const DefaultPath = "crudgen.yaml"

type Config struct {
	Port      string `yaml:"port"`
	OutputDir string `yaml:"outputDir"` // корень OUTPUT
	TypesDir  string `yaml:"typesDir"`  // YAML-каталог дополнительных типов полей

	// FixSaveCall меняет вывод views.py: "<obj>.save()" вместо "<obj>save()"
	FixSaveCall bool `yaml:"fixSaveCall"`

	LogLevel  string `yaml:"logLevel"`  // debug|info|warn|error
	LogFormat string `yaml:"logFormat"` // text|json
}

func def() Config {
	return Config{
		Port:        "8080",
		OutputDir:   "OUTPUT",
		TypesDir:    "reference/types",
		FixSaveCall: false,
		LogLevel:    "info",
		LogFormat:   logging.FormatText,
	}
}

func loadYAML(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return fallback
}

func parseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

// Load: defaults -> YAML (если файл есть) -> .env -> CRUDGEN_* из окружения.
// Флаги накладываются отдельно (BindFlags или cobra).
func Load(path string) (Config, error) {
	cfg := def()

	if path != "" {
		if err := loadYAML(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	cfg.Port = getenv("CRUDGEN_PORT", cfg.Port)
	cfg.OutputDir = getenv("CRUDGEN_OUTPUT_DIR", cfg.OutputDir)
	cfg.TypesDir = getenv("CRUDGEN_TYPES_DIR", cfg.TypesDir)
	cfg.FixSaveCall = getenvBool("CRUDGEN_FIX_SAVE_CALL", cfg.FixSaveCall)
	cfg.LogLevel = getenv("CRUDGEN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("CRUDGEN_LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

// BindFlags регистрирует флаги сервера; значения по умолчанию — из cfg.
// После set.Parse флаги уже лежат в cfg.
func BindFlags(set *flag.FlagSet, cfg *Config) {
	set.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	set.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output root directory")
	set.StringVar(&cfg.TypesDir, "types", cfg.TypesDir, "Directory with YAML field-type catalogs")
	set.BoolVar(&cfg.FixSaveCall, "fix-save", cfg.FixSaveCall, "Emit obj.save() in views.py (changes generated output)")
	set.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug/info/warn/error)")
	set.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text/json)")
}

// Validate проверяет то, что нельзя поправить молча.
func (c Config) Validate() error {
	if p, err := strconv.Atoi(strings.TrimSpace(c.Port)); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output dir is empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (allowed: text|json)", c.LogFormat)
	}
	return nil
}
