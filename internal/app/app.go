package app

import (
	"fmt"

	"jarvis/internal/ai"
	"jarvis/internal/assistant"
	"jarvis/internal/config"
	"jarvis/internal/events"
	"jarvis/internal/speech"
	"jarvis/internal/tasks"
	"jarvis/internal/vision"
	"jarvis/internal/websearch"
)

// App bundles one fully wired assistant: session, event hub and the
// speech devices that need explicit teardown.
type App struct {
	Config   config.Config
	Session  *assistant.Session
	Hub      *events.Hub
	Listener *speech.WhisperListener
	Speaker  *speech.EspeakSpeaker
}

// New builds the whole capability graph from config: task automation,
// web search, vision, the AI fallback, whisper capture and espeak
// output.
func New(cfg config.Config) (*App, error) {
	chat, err := ai.NewConversation(cfg)
	if err != nil {
		return nil, fmt.Errorf("ai fallback: %w", err)
	}

	svc := &assistant.Services{
		Tasks:  tasks.NewAutomation(cfg.ScreenshotDir),
		Search: websearch.NewSearcher(),
		Vision: vision.NewSystem(cfg.FaceCascade, cfg.ScreenshotDir),
		Chat:   chat,
	}

	listener, err := speech.NewWhisperListener(cfg.WhisperModel, cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("speech input: %w", err)
	}
	listener.DumpDir = cfg.CaptureDir
	listener.ChimePath = cfg.ChimePath

	speaker, err := speech.NewEspeakSpeaker(cfg.Language, cfg.VoiceRate, cfg.VoiceVolume)
	if err != nil {
		listener.Close()
		return nil, fmt.Errorf("speech output: %w", err)
	}

	hub := events.NewHub()
	session := assistant.NewSession(cfg, svc.NewRouter(), listener, speaker, hub)
	svc.OnExit = session.Stop

	return &App{
		Config:   cfg,
		Session:  session,
		Hub:      hub,
		Listener: listener,
		Speaker:  speaker,
	}, nil
}

func (a *App) Close() {
	a.Speaker.Close()
	a.Listener.Close()
}
