package config

import (
	"encoding/json"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds every tunable of the assistant. Unknown keys in the
// file are ignored; absent keys keep their defaults.
type Config struct {
	Language    string  `json:"language"`
	VoiceRate   int     `json:"voice_rate"`
	VoiceVolume float64 `json:"voice_volume"`
	WakeWord    string  `json:"wake_word"`
	GeminiAPI   string  `json:"GEMINI_API"`
	OpenAIAPI   string  `json:"OPENAI_API"`

	ListenTimeout time.Duration `json:"-"`
	ListenSeconds int           `json:"listen_timeout"`

	WhisperModel  string `json:"whisper_model"`
	FaceCascade   string `json:"face_cascade"`
	ScreenshotDir string `json:"screenshot_dir"`
	CaptureDir    string `json:"capture_dir"`
	ChimePath     string `json:"chime_path"`
	SocketPath    string `json:"socket_path"`
	EventsAddr    string `json:"events_addr"`
	ProxyAddr     string `json:"proxy_addr"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Language:      "en-US",
		VoiceRate:     150,
		VoiceVolume:   0.9,
		WakeWord:      "jarvis",
		ListenSeconds: 10,
		ListenTimeout: 10 * time.Second,
		WhisperModel:  "models/ggml-base.en.bin",
		ScreenshotDir: filepath.Join(home, "Pictures"),
		SocketPath:    "/tmp/jarvis.sock",
	}
}

// Load reads a JSON config file and merges it over the defaults.
// A missing or unreadable file is not fatal: the returned Config is
// usable either way, and the error only tells the caller what happened.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Default()
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// FromEnv overrides API keys from the environment when set.
// godotenv.Load is expected to have run already.
func (c *Config) FromEnv() {
	if v := os.Getenv("GEMINI_API"); v != "" {
		c.GeminiAPI = v
	}
	if v := os.Getenv("OPENAI_API"); v != "" {
		c.OpenAIAPI = v
	}
}

func (c *Config) normalize() {
	def := Default()
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.VoiceRate <= 0 {
		c.VoiceRate = def.VoiceRate
	}
	if c.VoiceVolume <= 0 || c.VoiceVolume > 1 {
		c.VoiceVolume = def.VoiceVolume
	}
	c.WakeWord = strings.ToLower(strings.TrimSpace(c.WakeWord))
	if c.WakeWord == "" {
		c.WakeWord = def.WakeWord
	}
	if c.ListenSeconds <= 0 {
		c.ListenSeconds = def.ListenSeconds
	}
	c.ListenTimeout = time.Duration(c.ListenSeconds) * time.Second
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = def.ScreenshotDir
	}
	if c.SocketPath == "" {
		c.SocketPath = def.SocketPath
	}
	if c.WhisperModel == "" {
		c.WhisperModel = def.WhisperModel
	}
}

// MustLoad is Load with the degraded-startup policy applied: any load
// failure is logged and the defaults are used.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.Warn("Config unavailable, using defaults", "path", path, "err", err)
	}
	return cfg
}
