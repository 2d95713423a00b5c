package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the askta API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Auth    AuthConfig    `yaml:"auth"`
	OCR     OCRConfig     `yaml:"ocr"`
	Engine  EngineConfig  `yaml:"engine"`
	Crawler CrawlerConfig `yaml:"crawler"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port              int `yaml:"port"`
	ReadTimeoutSec    int `yaml:"read_timeout_sec"`
	WriteTimeoutSec   int `yaml:"write_timeout_sec"`
	ShutdownSec       int `yaml:"shutdown_timeout_sec"`
	RequestTimeoutSec int `yaml:"request_timeout_sec"`
}

// CorpusConfig holds the corpus file locations.
type CorpusConfig struct {
	PostsPath   string `yaml:"posts_path"`
	ContentPath string `yaml:"content_path"`
}

// OCRConfig holds image text extraction settings.
type OCRConfig struct {
	Enabled bool   `yaml:"enabled"`
	Binary  string `yaml:"binary"` // tesseract binary path (default: tesseract)
}

// EngineConfig holds retrieval thresholds. Zero values fall back to
// the engine defaults (60 for posts, 50 for content).
type EngineConfig struct {
	PostThreshold    float64 `yaml:"post_threshold"`
	ContentThreshold float64 `yaml:"content_threshold"`
}

// CrawlerConfig holds forum crawler settings (used by cmd/scraper).
type CrawlerConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Categories []string `yaml:"categories"`
	WindowDays int      `yaml:"window_days"`
	RatePerSec float64  `yaml:"rate_per_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 35
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.RequestTimeoutSec <= 0 {
		c.HTTP.RequestTimeoutSec = 30
	}
	if c.Corpus.PostsPath == "" {
		c.Corpus.PostsPath = "data/posts.json"
	}
	if c.Corpus.ContentPath == "" {
		c.Corpus.ContentPath = "data/course_content.json"
	}
	if c.OCR.Binary == "" {
		c.OCR.Binary = "tesseract"
	}
	if c.Crawler.WindowDays <= 0 {
		c.Crawler.WindowDays = 90
	}
	if c.Crawler.RatePerSec <= 0 {
		c.Crawler.RatePerSec = 1
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Engine.PostThreshold < 0 {
		return fmt.Errorf("engine.post_threshold must be non-negative, got %v", c.Engine.PostThreshold)
	}
	if c.Engine.ContentThreshold < 0 {
		return fmt.Errorf("engine.content_threshold must be non-negative, got %v", c.Engine.ContentThreshold)
	}
	if c.Crawler.BaseURL != "" && !strings.HasPrefix(c.Crawler.BaseURL, "http") {
		return fmt.Errorf("crawler.base_url must be an http(s) URL, got %q", c.Crawler.BaseURL)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
