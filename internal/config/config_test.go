package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsOnMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.Equal(t, "jarvis", cfg.WakeWord)
	assert.Equal(t, "en-US", cfg.Language)
	assert.Equal(t, 150, cfg.VoiceRate)
	assert.InDelta(t, 0.9, cfg.VoiceVolume, 1e-9)
}

func TestLoadDefaultsOnBadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{not json"))
	assert.Error(t, err)
	assert.Equal(t, "jarvis", cfg.WakeWord)
}

func TestLoadPartialKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"wake_word": "Friday", "voice_rate": 180}`))
	require.NoError(t, err)
	assert.Equal(t, "friday", cfg.WakeWord)
	assert.Equal(t, 180, cfg.VoiceRate)
	// untouched keys keep defaults
	assert.Equal(t, "en-US", cfg.Language)
	assert.InDelta(t, 0.9, cfg.VoiceVolume, 1e-9)
}

func TestListenTimeout(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"listen_timeout": 5}`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.ListenTimeout)
}

func TestFromEnvOverride(t *testing.T) {
	t.Setenv("GEMINI_API", "g-key")
	t.Setenv("OPENAI_API", "o-key")

	cfg := Default()
	cfg.FromEnv()
	assert.Equal(t, "g-key", cfg.GeminiAPI)
	assert.Equal(t, "o-key", cfg.OpenAIAPI)
}
