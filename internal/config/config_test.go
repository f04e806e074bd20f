package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{
			SiteOrigin:    "https://beadfanatic.co.uk",
			IdentifyRPS:   0.5,
			IdentifyBurst: 3,
		},
		Data: DataConfig{BasePath: "/some/path"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Environments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = ""
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data base path cannot be empty")
}

func TestValidate_MissingSiteOrigin(t *testing.T) {
	cfg := validConfig()
	cfg.Server.SiteOrigin = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadIdentifyLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Server.IdentifyRPS = 0
	assert.Error(t, cfg.Validate())
}

func TestExpandDataPath_EmptyUsesDefault(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.expandDataPath())

	home, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(home, "BeadFanatic", "data"), cfg.Data.BasePath)
}

func TestExpandDataPath_TildeExpansion(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "~/bead-data"}}
	require.NoError(t, cfg.expandDataPath())

	home, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(home, "bead-data"), cfg.Data.BasePath)
}

func TestExpandDataPath_AbsolutePathKept(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "/var/lib/beadfanatic"}}
	require.NoError(t, cfg.expandDataPath())
	assert.Equal(t, "/var/lib/beadfanatic", cfg.Data.BasePath)
}

func TestExpandDataPath_RelativePathMadeAbsolute(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "relative/data"}}
	require.NoError(t, cfg.expandDataPath())
	assert.True(t, filepath.IsAbs(cfg.Data.BasePath))
	assert.Contains(t, cfg.Data.BasePath, "relative/data")
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "/data"}}
	assert.Equal(t, "/data/search.bleve", cfg.IndexPath())
	assert.Equal(t, "/data/beadfanatic.db", cfg.DatabasePath())
	assert.Equal(t, "/data/token.key", cfg.TokenKeyPath())
}

func TestValue_Precedence(t *testing.T) {
	assert.Equal(t, "flag-value", value("flag-value", "ENV_KEY", "default-value"))

	os.Setenv("TEST_ENV_KEY", "env-value") //nolint:errcheck // Test setup
	defer os.Unsetenv("TEST_ENV_KEY")      //nolint:errcheck // Test cleanup
	assert.Equal(t, "env-value", value("", "TEST_ENV_KEY", "default-value"))

	assert.Equal(t, "default-value", value("", "NONEXISTENT_KEY", "default-value"))
}

func TestFloatValue(t *testing.T) {
	assert.Equal(t, 0.5, floatValue("0.5", "UNSET", 1))
	assert.Equal(t, 2.0, floatValue("", "UNSET", 2))
	assert.Equal(t, 2.0, floatValue("not-a-number", "UNSET", 2))
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `# Test env file
ENV=staging
LOG_LEVEL=debug
DATA_PATH=/test/path
QUOTED_VALUE="some value"
SINGLE_QUOTED='another value'
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	keys := []string{"ENV", "LOG_LEVEL", "DATA_PATH", "QUOTED_VALUE", "SINGLE_QUOTED"}
	for _, k := range keys {
		os.Unsetenv(k) //nolint:errcheck // Test cleanup
	}
	defer func() {
		for _, k := range keys {
			os.Unsetenv(k) //nolint:errcheck // Test cleanup
		}
	}()

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "staging", os.Getenv("ENV"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "/test/path", os.Getenv("DATA_PATH"))
	assert.Equal(t, "some value", os.Getenv("QUOTED_VALUE"))
	assert.Equal(t, "another value", os.Getenv("SINGLE_QUOTED"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `VALID_KEY=valid_value
INVALID LINE WITHOUT EQUALS
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	err := loadEnvFile(envFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/file/.env"))
}

func TestLoadEnvFile_ExistingEnvVarsWin(t *testing.T) {
	os.Setenv("TEST_VAR", "original-value") //nolint:errcheck // Test setup
	defer os.Unsetenv("TEST_VAR")           //nolint:errcheck // Test cleanup

	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_VAR=new-value"), 0o644))

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "original-value", os.Getenv("TEST_VAR"))
}

func TestLoadEnvFile_SkipsBlanksAndComments(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `
KEY1=value1

# Comment

KEY2=value2
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	os.Unsetenv("KEY1") //nolint:errcheck // Test cleanup
	os.Unsetenv("KEY2") //nolint:errcheck // Test cleanup
	defer func() {
		os.Unsetenv("KEY1") //nolint:errcheck // Test cleanup
		os.Unsetenv("KEY2") //nolint:errcheck // Test cleanup
	}()

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "value1", os.Getenv("KEY1"))
	assert.Equal(t, "value2", os.Getenv("KEY2"))
}

func TestLoadEnvFile_TrimsWhitespace(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(`  PADDED_KEY  =  padded value  `), 0o644))

	os.Unsetenv("PADDED_KEY")       //nolint:errcheck // Test cleanup
	defer os.Unsetenv("PADDED_KEY") //nolint:errcheck // Test cleanup

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "padded value", os.Getenv("PADDED_KEY"))
}
