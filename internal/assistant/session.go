package assistant

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sync/atomic"
	"time"

	"jarvis/internal/config"
	"jarvis/internal/events"
	"jarvis/pkg/textutil"
)

// ErrNoSpeech is returned by a Listener when the capture timed out or
// nothing was recognized. The session treats it as silence, not as an
// error.
var ErrNoSpeech = errors.New("no speech recognized")

// Listener captures one utterance. Blocking, at most timeout long.
type Listener interface {
	Listen(ctx context.Context, timeout time.Duration) (string, error)
}

// Speaker delivers one response. Blocking until done.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type State int32

const (
	StateIdle State = iota
	StateListening
	StateProcessing
	StateSpeaking
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateListening:
		return "Listening"
	case StateProcessing:
		return "Processing"
	case StateSpeaking:
		return "Speaking"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Session runs the listen/route/speak loop: one blocking capture, one
// route, one spoken response, strictly sequential. A front end drives
// it from a dedicated goroutine and observes it through the event hub;
// the only state shared back is the cooperative stop flag.
type Session struct {
	cfg      config.Config
	router   *Router
	listener Listener
	speaker  Speaker
	hub      *events.Hub

	active       atomic.Bool
	conversation atomic.Bool
	state        atomic.Int32
}

func NewSession(cfg config.Config, router *Router, l Listener, sp Speaker, hub *events.Hub) *Session {
	s := &Session{
		cfg:      cfg,
		router:   router,
		listener: l,
		speaker:  sp,
		hub:      hub,
	}
	s.state.Store(int32(StateIdle))
	return s
}

func (s *Session) Active() bool           { return s.active.Load() }
func (s *Session) State() State           { return State(s.state.Load()) }
func (s *Session) ConversationMode() bool { return s.conversation.Load() }

func (s *Session) SetConversationMode(on bool) {
	s.conversation.Store(on)
	log.Info("Conversation mode", "enabled", on)
}

// Stop requests a cooperative stop, observed at the top of the next
// loop iteration.
func (s *Session) Stop() {
	s.active.Store(false)
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
	s.hub.Status(st.String())
}

// Run is the continuous loop. It returns when stopped or when ctx is
// canceled. Capture failures re-enter Listening; handler failures are
// already converted to text by the router.
func (s *Session) Run(ctx context.Context) {
	s.active.Store(true)
	defer s.setState(StateStopped)

	log.Info("Session loop started", "wake_word", s.cfg.WakeWord)

	for s.active.Load() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.turn(ctx)
	}
}

// RunOnce performs a single listen/route/speak turn.
func (s *Session) RunOnce(ctx context.Context) {
	s.active.Store(true)
	defer func() {
		s.active.Store(false)
		s.setState(StateIdle)
	}()
	s.turn(ctx)
}

// turn executes one listen/route/speak iteration. Utterances that fail
// capture or the wake-word gate simply end the turn.
func (s *Session) turn(ctx context.Context) {
	s.setState(StateListening)

	text, err := s.listener.Listen(ctx, s.cfg.ListenTimeout)
	if err != nil {
		if errors.Is(err, ErrNoSpeech) || errors.Is(err, context.Canceled) {
			return
		}
		log.Warn("Capture failed", "err", err)
		s.hub.Error(fmt.Sprintf("Capture failed: %v", err))
		return
	}

	cmd := textutil.Normalize(text)
	if cmd == "" {
		return
	}

	if !s.conversation.Load() {
		if !textutil.ContainsWord(cmd, s.cfg.WakeWord) {
			log.Debug("No wake word, discarding", "cmd", cmd)
			return
		}
		cmd = textutil.StripWord(cmd, s.cfg.WakeWord)
		if cmd == "" {
			return
		}
	}

	s.hub.Transcript(fmt.Sprintf("You: %s", cmd))
	s.setState(StateProcessing)

	resp := s.router.Route(ctx, cmd)

	s.hub.Response(fmt.Sprintf("Jarvis: %s", resp))
	s.setState(StateSpeaking)

	if err := s.speaker.Speak(ctx, resp); err != nil {
		log.Warn("Failed to speak response", "err", err)
		s.hub.Error(fmt.Sprintf("Speech output failed: %v", err))
	}
}

// Process routes a text command directly, bypassing capture and the
// wake-word gate. Used by the IPC "say" op and by the file-transcribe
// path.
func (s *Session) Process(ctx context.Context, text string) string {
	s.hub.Transcript(fmt.Sprintf("You: %s", textutil.Normalize(text)))
	s.setState(StateProcessing)
	resp := s.router.Route(ctx, text)
	s.hub.Response(fmt.Sprintf("Jarvis: %s", resp))
	s.setState(StateIdle)
	return resp
}
