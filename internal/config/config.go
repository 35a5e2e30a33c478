package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
)

// Config holds all configuration settings
type Config struct {
	// GitHub configuration
	GitHub GitHubConfig

	// Gemini configuration
	Gemini GeminiConfig

	// Analysis settings
	Analysis AnalysisConfig

	// Output settings
	Output OutputConfig
}

type GitHubConfig struct {
	Username  string
	Token     string
	RateLimit int // Requests per second
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AnalysisConfig struct {
	RecentDays       int
	TrendThreshold   int
	MaxRecentStars   int
	MaxActiveRepos   int
	MaxRecentCommits int
}

type OutputConfig struct {
	Dir       string
	Languages []string // README variants to request, primary first
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			RateLimit: 1, // GitHub allows 5,000 requests/hour; stay conservative
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Analysis: AnalysisConfig{
			RecentDays:       30,
			TrendThreshold:   2,
			MaxRecentStars:   12,
			MaxActiveRepos:   5,
			MaxRecentCommits: 10,
		},
		Output: OutputConfig{
			Dir:       ".",
			Languages: []string{"pt-br", "en"},
		},
	}
}

// Load loads configuration from .env files and environment variables
func Load() (*Config, error) {
	loadEnvFiles()

	v := viper.New()

	cfg := Default()
	v.SetDefault("github_rate_limit", cfg.GitHub.RateLimit)
	v.SetDefault("gemini_model", cfg.Gemini.Model)
	v.SetDefault("recent_days", cfg.Analysis.RecentDays)
	v.SetDefault("trend_threshold", cfg.Analysis.TrendThreshold)
	v.SetDefault("max_recent_stars", cfg.Analysis.MaxRecentStars)
	v.SetDefault("max_active_repos", cfg.Analysis.MaxActiveRepos)
	v.SetDefault("max_recent_commits", cfg.Analysis.MaxRecentCommits)
	v.SetDefault("output_dir", cfg.Output.Dir)
	v.AutomaticEnv()

	cfg.GitHub.RateLimit = v.GetInt("github_rate_limit")
	cfg.Gemini.Model = v.GetString("gemini_model")
	cfg.Analysis.RecentDays = v.GetInt("recent_days")
	cfg.Analysis.TrendThreshold = v.GetInt("trend_threshold")
	cfg.Analysis.MaxRecentStars = v.GetInt("max_recent_stars")
	cfg.Analysis.MaxActiveRepos = v.GetInt("max_active_repos")
	cfg.Analysis.MaxRecentCommits = v.GetInt("max_recent_commits")
	cfg.Output.Dir = v.GetString("output_dir")

	// Apply environment variable overrides for secrets
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if username := os.Getenv("GITHUB_USERNAME"); username != "" {
		cfg.GitHub.Username = username
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Gemini.Model = model
	}
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
}

// Validate checks that all required settings are present and well formed.
// A failure here is fatal: no run is attempted.
func (c *Config) Validate() error {
	if c.GitHub.Username == "" {
		return apperrors.ConfigError("GITHUB_USERNAME is required")
	}
	if !ValidUsername(c.GitHub.Username) {
		return apperrors.ConfigErrorf("invalid GitHub username: %q", c.GitHub.Username)
	}
	if c.GitHub.Token == "" {
		return apperrors.ConfigError("GITHUB_TOKEN is required. Create a token at: https://github.com/settings/tokens")
	}
	if c.Gemini.APIKey == "" {
		return apperrors.ConfigError("GEMINI_API_KEY is required")
	}
	if c.GitHub.RateLimit <= 0 {
		return apperrors.ConfigErrorf("GITHUB_RATE_LIMIT must be positive, got %d", c.GitHub.RateLimit)
	}
	if c.Analysis.RecentDays <= 0 {
		return apperrors.ConfigErrorf("RECENT_DAYS must be positive, got %d", c.Analysis.RecentDays)
	}
	if c.Analysis.TrendThreshold < 0 {
		return apperrors.ConfigErrorf("TREND_THRESHOLD must not be negative, got %d", c.Analysis.TrendThreshold)
	}
	if len(c.Output.Languages) == 0 {
		return apperrors.ConfigError("at least one output language is required")
	}
	return nil
}
