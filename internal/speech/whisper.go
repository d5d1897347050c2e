package speech

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"jarvis/internal/assistant"
	"jarvis/internal/notify"
	"jarvis/pkg/audioconv"
	"jarvis/pkg/stt"
)

// WhisperListener is the production Listener: portaudio capture plus
// local whisper.cpp transcription.
type WhisperListener struct {
	rec *Recorder
	tr  *stt.Transcriber

	language string

	// DumpDir, when set, receives a WAV copy of every capture.
	DumpDir string

	// ChimePath, when set, is played before each capture starts.
	ChimePath string
}

func NewWhisperListener(modelPath, language string) (*WhisperListener, error) {
	rec := NewRecorder()
	if err := rec.Init(); err != nil {
		return nil, fmt.Errorf("init audio: %w", err)
	}

	tr, err := stt.NewTranscriber(modelPath)
	if err != nil {
		rec.Close()
		return nil, fmt.Errorf("init whisper: %w", err)
	}

	// whisper wants a bare language code, config carries a locale
	lang := strings.SplitN(language, "-", 2)[0]
	if lang == "" {
		lang = "auto"
	}

	return &WhisperListener{rec: rec, tr: tr, language: lang}, nil
}

func (w *WhisperListener) Close() error {
	w.rec.Close()
	return w.tr.Close()
}

// Listen captures one utterance and transcribes it. Silence and empty
// transcripts surface as assistant.ErrNoSpeech.
func (w *WhisperListener) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	notify.Chime(w.ChimePath)

	pcm, err := w.rec.Record(timeout)
	if err != nil {
		return "", fmt.Errorf("record: %w", err)
	}
	if len(pcm) == 0 {
		return "", assistant.ErrNoSpeech
	}

	log.Debug("Recorded utterance", "samples", len(pcm))

	if w.DumpDir != "" {
		if path, err := dumpWAV(w.DumpDir, pcm); err != nil {
			log.Warn("Failed to dump capture", "err", err)
		} else {
			log.Debug("Dumped capture", "path", path)
		}
	}

	res, err := w.tr.Transcribe(ctx, pcm, stt.Options{Language: w.language})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", assistant.ErrNoSpeech
	}

	log.Info("Transcribed", "text", text)
	return text, nil
}

// TranscribeFile decodes an audio file and runs it through the same
// transcriber. Serves the ipc "transcribe" op.
func (w *WhisperListener) TranscribeFile(ctx context.Context, path string) (string, error) {
	pcm, err := audioconv.DecodeFile(path, 0)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	if len(pcm) == 0 {
		return "", assistant.ErrNoSpeech
	}

	res, err := w.tr.Transcribe(ctx, pcm, stt.Options{Language: w.language})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}
