package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFrom tests configuration precedence: defaults < YAML < .env < env
func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		dotenv      string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8010, cfg.Server.Port)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.EnableCORS)
				assert.Equal(t, "latest", cfg.Source.Mode)
				assert.Equal(t, "yields.csv", cfg.Source.FileName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
			},
		},
		{
			name: "yaml overrides defaults field by field",
			yaml: `
server:
  port: 9000
source:
  mode: fixed
  file_name: q2.csv
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "untouched keys keep defaults")
				assert.Equal(t, "fixed", cfg.Source.Mode)
				assert.Equal(t, "q2.csv", cfg.Source.FileName)
			},
		},
		{
			name: "environment wins over yaml",
			yaml: `
server:
  port: 9000
logging:
  level: warn
`,
			env: map[string]string{
				"YIELD_SERVER_PORT":             "9100",
				"YIELD_SECURITY_ALLOWED_ORIGINS": "http://a.example,http://b.example",
				"YIELD_SERVER_READ_TIMEOUT":      "5s",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9100, cfg.Server.Port)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name:   "dotenv file is read",
			dotenv: "YIELD_SOURCE_MODE=fixed\nYIELD_SOURCE_FILE_NAME=from-dotenv.csv\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "fixed", cfg.Source.Mode)
				assert.Equal(t, "from-dotenv.csv", cfg.Source.FileName)
			},
		},
		{
			name:   "process environment wins over dotenv",
			dotenv: "YIELD_SOURCE_FILE_NAME=from-dotenv.csv\n",
			env:    map[string]string{"YIELD_SOURCE_FILE_NAME": "from-env.csv"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env.csv", cfg.Source.FileName)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"YIELD_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "unknown source mode",
			yaml:    "source:\n  mode: newest\n",
			wantErr: true,
		},
		{
			name:    "fixed mode needs a file name",
			yaml:    "source:\n  mode: fixed\n  file_name: \"\"\n",
			wantErr: true,
		},
		{
			name:    "unknown log output",
			env:     map[string]string{"YIELD_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "server: [",
			wantErr: true,
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"YIELD_SERVER_PORT": "eighty"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			var configFile, envFile string
			if tt.yaml != "" {
				configFile = writeConfigFile(t, dir, "config.yaml", tt.yaml)
			}
			if tt.dotenv != "" {
				envFile = writeConfigFile(t, dir, ".env", tt.dotenv)
				// godotenv sets process variables; make sure they are removed afterwards
				for _, key := range []string{"YIELD_SOURCE_MODE", "YIELD_SOURCE_FILE_NAME"} {
					t.Setenv(key, os.Getenv(key))
					os.Unsetenv(key)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			t.Setenv("YIELD_PATHS_BASE_DIR", dir)

			cfg, err := LoadFrom(configFile, envFile)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadFrom_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YIELD_PATHS_BASE_DIR", dir)

	cfg, err := LoadFrom(filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.Server.Port)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestConfig_Addr(t *testing.T) {
	cfg := Default()
	cfg.Server.Host = ""
	cfg.Server.Port = 8123
	assert.Equal(t, ":8123", cfg.Addr())
}
