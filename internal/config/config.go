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

// Config holds the cinedex API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Elastic ElasticConfig `yaml:"elasticsearch"`
	Cache   CacheConfig   `yaml:"cache"`
	Search  SearchConfig  `yaml:"search"`
	Assets  AssetsConfig  `yaml:"assets"`
	Taste   TasteConfig   `yaml:"taste"`
	Auth    AuthConfig    `yaml:"auth"`
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
	Port            int  `yaml:"port"`
	ReadTimeoutSec  int  `yaml:"read_timeout_sec"`
	WriteTimeoutSec int  `yaml:"write_timeout_sec"`
	ShutdownSec     int  `yaml:"shutdown_timeout_sec"`
	TrustAdultHdr   bool `yaml:"trust_adult_header"` // accept X-Viewer-Adult from the auth gateway
}

// ElasticConfig holds Elasticsearch connection settings.
type ElasticConfig struct {
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Index    string   `yaml:"index"`
}

// CacheConfig holds the optional Redis read-through cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	FilterTTLSec     int      `yaml:"filter_ttl_sec"`
	RecommendTTLSec  int      `yaml:"recommend_ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds engine tuning knobs. The boost weights mirror the values
// the corpus was tuned with; they are deliberately configuration, not constants.
type SearchConfig struct {
	DefaultPageSize    int                `yaml:"default_page_size"`
	MaxPageSize        int                `yaml:"max_page_size"`
	QualityBoostWeight float64            `yaml:"quality_boost_weight"`
	QualityBoostFactor float64            `yaml:"quality_boost_factor"`
	RecommendTarget    int                `yaml:"recommend_target"`
	TitleMatchBoost    float64            `yaml:"title_match_boost"`
	MLTFieldBoosts     map[string]float64 `yaml:"mlt_field_boosts"`
	PoolSize           int                `yaml:"pool_size"`
	PoolMinVoteCount   int                `yaml:"pool_min_vote_count"`
	PoolMinPopularity  float64            `yaml:"pool_min_popularity"`
}

// AssetsConfig holds derived asset URL settings.
type AssetsConfig struct {
	PosterBaseURL string `yaml:"poster_base_url"`
}

// TasteConfig holds the quick-match taste advisor settings.
type TasteConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
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
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Elastic.Index == "" {
		c.Elastic.Index = "movies"
	}
	if c.Cache.FilterTTLSec <= 0 {
		c.Cache.FilterTTLSec = 600
	}
	if c.Cache.RecommendTTLSec <= 0 {
		c.Cache.RecommendTTLSec = 3600
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.QualityBoostWeight <= 0 {
		c.Search.QualityBoostWeight = 1.2
	}
	if c.Search.QualityBoostFactor <= 0 {
		c.Search.QualityBoostFactor = 1.2
	}
	if c.Search.RecommendTarget <= 0 {
		c.Search.RecommendTarget = 10
	}
	if c.Search.TitleMatchBoost <= 0 {
		c.Search.TitleMatchBoost = 5.0
	}
	if len(c.Search.MLTFieldBoosts) == 0 {
		c.Search.MLTFieldBoosts = map[string]float64{
			"genre_ids": 3.5,
			"director":  2.0,
			"actors":    1.5,
			"overview":  1.0,
		}
	}
	if c.Search.PoolSize <= 0 {
		c.Search.PoolSize = 8000
	}
	if c.Search.PoolMinVoteCount <= 0 {
		c.Search.PoolMinVoteCount = 300
	}
	if c.Search.PoolMinPopularity <= 0 {
		c.Search.PoolMinPopularity = 5
	}
	if c.Assets.PosterBaseURL == "" {
		c.Assets.PosterBaseURL = "https://image.tmdb.org/t/p/w500"
	}
	if c.Taste.Model == "" {
		c.Taste.Model = "gpt-4o-mini"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Elastic.Addrs) == 0 {
		return fmt.Errorf("elasticsearch.addrs is required")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled")
	}
	if c.Taste.Enabled && c.Taste.APIKey == "" {
		return fmt.Errorf("taste.api_key is required when taste.enabled")
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size %d exceeds search.max_page_size %d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
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
