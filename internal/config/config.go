package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PaperSize is a PDF page size in inches.
type PaperSize struct {
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// Config holds all configuration for the application.
type Config struct {
	Site struct {
		Title     string `yaml:"title" validate:"required"`
		OutDir    string `yaml:"out_dir" validate:"required"`
		AssetBase string `yaml:"asset_base" validate:"omitempty,safepath"`
		AssetDir  string `yaml:"asset_dir"` // empty means the assets compiled into the binary
	} `yaml:"site"`

	Watch struct {
		Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
	} `yaml:"watch"`

	Logger struct {
		Format     string `yaml:"format" validate:"omitempty,oneof=text json"`
		Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
		MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
		MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`

	PDF struct {
		DefaultPaper    string               `yaml:"default_paper" validate:"required"`
		PaperSizes      map[string]PaperSize `yaml:"paper_sizes" validate:"required,min=1,dive"`
		Margin          float64              `yaml:"margin" validate:"gte=0,lte=2"`
		TimeoutSecs     int                  `yaml:"timeout_secs" validate:"gt=0"`
		ChromePath      string               `yaml:"chrome_path"`
		ChromeNoSandbox bool                 `yaml:"chrome_no_sandbox"`
	} `yaml:"pdf"`
}

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	_ = validate.RegisterValidation("safepath", validateSafePath)
}

// validateSafePath ensures the path is relative and doesn't climb out of the
// output directory.
func validateSafePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if strings.Contains(path, "..") ||
		strings.Contains(path, "~") ||
		strings.HasPrefix(path, "/") ||
		strings.Contains(path, "\\") {
		return false
	}
	return strings.TrimSuffix(path, "/") == filepath.ToSlash(filepath.Clean(path))
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	var cfg Config
	cfg.Site.Title = "Pet Shop"
	cfg.Site.OutDir = "dist"
	cfg.Site.AssetBase = "assets"
	cfg.Watch.Debounce = 200 * time.Millisecond
	cfg.Logger.Format = "text"
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 10
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 28
	cfg.PDF.DefaultPaper = "A4"
	cfg.PDF.PaperSizes = map[string]PaperSize{
		"A4":     {Width: 8.27, Height: 11.69},
		"LETTER": {Width: 8.5, Height: 11},
	}
	cfg.PDF.Margin = 0.4
	cfg.PDF.TimeoutSecs = 30
	return cfg
}

// Load reads configuration from a .env file, the YAML file at path and
// environment variables, in that order. An empty path falls back to
// CONFIG_PATH, which the .env file may set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return LoadFrom(path)
}

// LoadFrom builds the configuration from defaults, the YAML file at path (an
// empty path skips the file) and environment overrides, then validates it.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.PDF.DefaultPaper = strings.ToUpper(cfg.PDF.DefaultPaper)
	cfg.PDF.PaperSizes = upperKeys(cfg.PDF.PaperSizes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, ok := c.PDF.PaperSizes[c.PDF.DefaultPaper]; !ok {
		return fmt.Errorf("%w: default paper %q is not a configured paper size", ErrInvalidConfig, c.PDF.DefaultPaper)
	}
	return c.CheckOutDir(c.Site.OutDir)
}

// CheckOutDir rejects an output directory that is the asset directory or lies
// inside it. Such a layout republishes every build into the next one.
func (c *Config) CheckOutDir(outDir string) error {
	if c.Site.AssetDir == "" {
		return nil
	}
	nested, err := isWithin(c.Site.AssetDir, outDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if nested {
		return fmt.Errorf("%w: out dir %q must not be inside asset dir %q", ErrInvalidConfig, outDir, c.Site.AssetDir)
	}
	return nil
}

// isWithin reports whether target is dir itself or lies below it.
func isWithin(dir, target string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absTarget)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"PETSHOP_TITLE", &cfg.Site.Title},
		{"PETSHOP_OUT_DIR", &cfg.Site.OutDir},
		{"PETSHOP_ASSET_BASE", &cfg.Site.AssetBase},
		{"PETSHOP_ASSET_DIR", &cfg.Site.AssetDir},
		{"LOG_FORMAT", &cfg.Logger.Format},
		{"LOG_LEVEL", &cfg.Logger.Level},
		{"LOG_FILE", &cfg.Logger.File},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
	// Common container variable for the Chrome binary.
	if cfg.PDF.ChromePath == "" {
		if v := os.Getenv("CHROME_BIN"); v != "" {
			cfg.PDF.ChromePath = v
		}
	}
}

func upperKeys(in map[string]PaperSize) map[string]PaperSize {
	out := make(map[string]PaperSize, len(in))
	for k, v := range in {
		out[strings.ToUpper(k)] = v
	}
	return out
}
