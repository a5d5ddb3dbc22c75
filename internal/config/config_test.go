package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "REMOTE_DATABASE_URL", "REMOTE_DATABASE_KEY", "LOCAL_STORE_PATH",
		"ADMIN_PASSWORD", "GOOGLE_GENERATIVE_AI_API_KEY", "GEMINI_API_KEY",
		"CHAT_MODEL", "CORS_ORIGIN", "LOG_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	content := `{
		"port": 9090,
		"local_store_path": "/var/lib/vibetank/local.db",
		"admin_password": "from-file",
		"verbose": true
	}`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/var/lib/vibetank/local.db", cfg.LocalStorePath)
	assert.Equal(t, "from-file", cfg.AdminPassword)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{ invalid json }`), 0644))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("REMOTE_DATABASE_URL", "postgres://db/site")
	t.Setenv("REMOTE_DATABASE_KEY", "secret")
	t.Setenv("GEMINI_API_KEY", "fallback-key")
	t.Setenv("LOG_VERBOSE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "postgres://db/site", cfg.RemoteDatabaseURL)
	assert.Equal(t, "secret", cfg.RemoteDatabaseKey)
	assert.Equal(t, "fallback-key", cfg.ChatAPIKey)
	assert.True(t, cfg.Verbose)
}

func TestFromEnv_PrefersGoogleKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_GENERATIVE_AI_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "fallback")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.ChatAPIKey)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")
	_, err := FromEnv()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("LOG_VERBOSE", "sometimes")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoad_EnvWinsOverFileWinsOverDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD", "from-env")

	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"admin_password":"from-file","port":9000}`), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AdminPassword)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, DefaultLocalStorePath, cfg.LocalStorePath)
	assert.Equal(t, DefaultChatModel, cfg.ChatModel)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "negative port", cfg: Config{Port: -1, LocalStorePath: "x"}, wantErr: true},
		{name: "port too large", cfg: Config{Port: 70000, LocalStorePath: "x"}, wantErr: true},
		{name: "missing local path", cfg: Config{Port: 80}, wantErr: true},
		{name: "non-postgres remote", cfg: Config{Port: 80, LocalStorePath: "x", RemoteDatabaseURL: "https://example.supabase.co"}, wantErr: true},
		{name: "placeholder remote", cfg: Config{Port: 80, LocalStorePath: "x", RemoteDatabaseURL: "undefined"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{AdminPassword: "mine"}
	defaults := Config{
		Port:          9999,
		AdminPassword: "theirs",
		ChatModel:     "model-x",
		Verbose:       true,
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine", result.AdminPassword, "should keep existing value")
	assert.Equal(t, 9999, result.Port, "should use default")
	assert.Equal(t, "model-x", result.ChatModel)
	assert.True(t, result.Verbose)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Port: 1234, ChatModel: "m"}
	result := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, *cfg, result)
}

func TestIsRemoteConfigured(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
		want bool
	}{
		{name: "both set", url: "postgres://db/site", key: "k", want: true},
		{name: "missing key", url: "postgres://db/site", key: "", want: false},
		{name: "missing url", url: "", key: "k", want: false},
		{name: "placeholder url", url: "undefined", key: "k", want: false},
		{name: "placeholder key", url: "postgres://db/site", key: "undefined", want: false},
		{name: "whitespace key", url: "postgres://db/site", key: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{RemoteDatabaseURL: tt.url, RemoteDatabaseKey: tt.key}
			assert.Equal(t, tt.want, cfg.IsRemoteConfigured())
		})
	}
}

func TestChatConfigured(t *testing.T) {
	assert.False(t, (&Config{}).ChatConfigured())
	assert.False(t, (&Config{ChatAPIKey: "undefined"}).ChatConfigured())
	assert.True(t, (&Config{ChatAPIKey: "key"}).ChatConfigured())
}
