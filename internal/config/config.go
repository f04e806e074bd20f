// Package config loads application configuration from flags, environment
// variables, and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Data    DataConfig
	Content ContentConfig
	Vision  VisionConfig
	Auth    AuthConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string
	SiteOrigin   string // Browser origin allowed by CORS
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Inbound identify endpoint limit, per client IP.
	IdentifyRPS   float64
	IdentifyBurst int
}

// DataConfig holds storage paths. Everything the server persists (search
// index, identification history, token key) lives under BasePath.
type DataConfig struct {
	BasePath string
}

// ContentConfig holds the encyclopedia content source configuration.
type ContentConfig struct {
	// Dir is the directory of markdown entries with YAML frontmatter.
	Dir string
	// Watch enables live reindexing when entry files change.
	Watch bool
}

// VisionConfig holds image captioning provider configuration.
type VisionConfig struct {
	// HuggingFaceKey authorizes calls to the inference API. Empty disables
	// the remote providers; identification then runs on filename fallback.
	HuggingFaceKey string
	// Timeout bounds a single captioning call.
	Timeout time.Duration
	// RetryDelay is the pause before the one retry when a model reports
	// that it is still loading.
	RetryDelay time.Duration
	// OutboundRPS paces calls per provider.
	OutboundRPS   float64
	OutboundBurst int
}

// AuthConfig holds admin token configuration.
type AuthConfig struct {
	// TokenKey is the PASETO v4 symmetric key, set from auth.LoadOrGenerateKey.
	TokenKey      []byte
	TokenDuration time.Duration
}

// Load reads configuration with precedence: flags, then environment
// variables, then the .env file, then defaults.
func Load() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverName := flag.String("server-name", "", "Server name")
	port := flag.String("port", "", "Server port (default: 8080)")
	siteOrigin := flag.String("site-origin", "", "Browser origin allowed by CORS")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	identifyRPS := flag.String("identify-rps", "", "Identify endpoint requests per second per IP (default: 0.5)")
	identifyBurst := flag.String("identify-burst", "", "Identify endpoint burst per IP (default: 3)")
	dataPath := flag.String("data-path", "", "Base path for server data")
	contentDir := flag.String("content-dir", "", "Directory of encyclopedia markdown entries")
	contentWatch := flag.String("content-watch", "", "Reindex when content files change (default: true)")
	hfKey := flag.String("huggingface-key", "", "Hugging Face inference API key")
	visionTimeout := flag.String("vision-timeout", "", "Captioning call timeout (default: 30s)")
	visionRetryDelay := flag.String("vision-retry-delay", "", "Delay before retrying a loading model (default: 2s)")
	visionRPS := flag.String("vision-rps", "", "Outbound captioning requests per second (default: 1)")
	tokenDuration := flag.String("token-duration", "", "Admin token lifetime (default: 12h)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Missing .env files are fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: value(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: value(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name:          value(*serverName, "SERVER_NAME", "Bead Fanatic Server"),
			Port:          value(*port, "SERVER_PORT", "8080"),
			SiteOrigin:    value(*siteOrigin, "SITE_ORIGIN", "https://beadfanatic.co.uk"),
			IdentifyRPS:   floatValue(*identifyRPS, "IDENTIFY_RPS", 0.5),
			IdentifyBurst: intValue(*identifyBurst, "IDENTIFY_BURST", 3),
		},
		Data: DataConfig{
			BasePath: value(*dataPath, "DATA_PATH", ""),
		},
		Content: ContentConfig{
			Dir:   value(*contentDir, "CONTENT_DIR", ""),
			Watch: boolValue(*contentWatch, "CONTENT_WATCH", true),
		},
		Vision: VisionConfig{
			HuggingFaceKey: value(*hfKey, "HUGGINGFACE_API_KEY", ""),
			OutboundRPS:    floatValue(*visionRPS, "VISION_RPS", 1),
			OutboundBurst:  1,
		},
	}

	durations := []struct {
		dst  *time.Duration
		flag string
		env  string
		def  string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "30s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.Vision.Timeout, *visionTimeout, "VISION_TIMEOUT", "30s"},
		{&cfg.Vision.RetryDelay, *visionRetryDelay, "VISION_RETRY_DELAY", "2s"},
		{&cfg.Auth.TokenDuration, *tokenDuration, "TOKEN_DURATION", "12h"},
	}
	for _, d := range durations {
		raw := value(d.flag, d.env, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(d.env), raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandContentDir(); err != nil {
		return nil, fmt.Errorf("invalid content dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks required values.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}
	if c.Server.SiteOrigin == "" {
		return errors.New("site origin is required")
	}
	if c.Server.IdentifyRPS <= 0 || c.Server.IdentifyBurst <= 0 {
		return errors.New("identify rate limit must be positive")
	}
	// Content.Dir may be empty: the server then runs with an empty
	// encyclopedia and identification still works.
	return nil
}

// IndexPath is where the search index lives.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Data.BasePath, "search.bleve")
}

// DatabasePath is where the identification history database lives.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.BasePath, "beadfanatic.db")
}

// TokenKeyPath is where the admin token key is persisted.
func (c *Config) TokenKeyPath() string {
	return filepath.Join(c.Data.BasePath, "token.key")
}

func (c *Config) expandDataPath() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	expanded, err := expandPath(c.Data.BasePath, filepath.Join(home, "BeadFanatic", "data"))
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

func (c *Config) expandContentDir() error {
	if c.Content.Dir == "" {
		return nil
	}
	expanded, err := expandPath(c.Content.Dir, "")
	if err != nil {
		return err
	}
	c.Content.Dir = expanded
	return nil
}

// expandPath expands a leading ~ and makes the path absolute. Empty paths
// fall back to defaultPath.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path: %w", err)
		}
		path = abs
	}
	return filepath.Clean(path), nil
}

// value returns the first non-empty of flag, environment variable, default.
func value(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func boolValue(flagValue, envKey string, defaultValue bool) bool {
	raw := value(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func intValue(flagValue, envKey string, defaultValue int) int {
	raw := value(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	var parsed int
	if _, err := fmt.Sscanf(raw, "%d", &parsed); err != nil {
		return defaultValue
	}
	return parsed
}

func floatValue(flagValue, envKey string, defaultValue float64) float64 {
	raw := value(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	var parsed float64
	if _, err := fmt.Sscanf(raw, "%g", &parsed); err != nil {
		return defaultValue
	}
	return parsed
}

// loadEnvFile loads KEY=value lines into the environment. Existing
// environment variables win over file entries.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, val); err != nil {
				return fmt.Errorf("set env var %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
