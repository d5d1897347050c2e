package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/config"
	"jarvis/internal/events"
)

// scriptListener feeds pre-baked utterances, then reports silence.
type scriptListener struct {
	script []string
	errs   []error
	i      int
}

func (l *scriptListener) Listen(ctx context.Context, _ time.Duration) (string, error) {
	if l.i >= len(l.script) {
		// keeps Run from spinning when a test forgets to stop
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Millisecond):
			return "", ErrNoSpeech
		}
	}
	text := l.script[l.i]
	var err error
	if l.i < len(l.errs) {
		err = l.errs[l.i]
	}
	l.i++
	return text, err
}

type memSpeaker struct {
	spoken []string
}

func (s *memSpeaker) Speak(_ context.Context, text string) error {
	s.spoken = append(s.spoken, text)
	return nil
}

func newTestSession(cfg config.Config, script ...string) (*Session, *memSpeaker, *fakeChat) {
	svc, _, _, _, fc := newTestServices()
	sp := &memSpeaker{}
	hub := events.NewHub()
	sess := NewSession(cfg, svc.NewRouter(), &scriptListener{script: script}, sp, hub)
	svc.OnExit = sess.Stop
	return sess, sp, fc
}

func TestWakeWordGateDiscardsWithoutWakeWord(t *testing.T) {
	cfg := config.Default()
	sess, sp, fc := newTestSession(cfg, "what time is it")

	sess.RunOnce(context.Background())

	// no wake word, no router invocation
	assert.Empty(t, sp.spoken)
	assert.Empty(t, fc.asked)
}

func TestWakeWordStrippedBeforeRouting(t *testing.T) {
	cfg := config.Default() // wake word "jarvis"
	sess, sp, _ := newTestSession(cfg, "jarvis what time is it")

	sess.RunOnce(context.Background())

	require.Len(t, sp.spoken, 1)
	assert.Contains(t, sp.spoken[0], "03:04 PM")
}

func TestConversationModeBypassesGate(t *testing.T) {
	cfg := config.Default()
	sess, sp, _ := newTestSession(cfg, "what time is it")
	sess.SetConversationMode(true)

	sess.RunOnce(context.Background())

	require.Len(t, sp.spoken, 1)
	assert.Contains(t, sp.spoken[0], "03:04 PM")
}

func TestSilenceIsNotAnError(t *testing.T) {
	cfg := config.Default()
	sess, sp, _ := newTestSession(cfg)
	sess.listener = &scriptListener{script: []string{""}, errs: []error{ErrNoSpeech}}

	sess.RunOnce(context.Background())
	assert.Empty(t, sp.spoken)
	assert.Equal(t, StateIdle, sess.State())
}

func TestExitCommandStopsLoop(t *testing.T) {
	cfg := config.Default()
	sess, sp, _ := newTestSession(cfg, "jarvis goodbye", "jarvis what time is it")

	done := make(chan struct{})
	go func() {
		sess.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after exit command")
	}

	require.Len(t, sp.spoken, 1)
	assert.Equal(t, "Goodbye! Have a great day.", sp.spoken[0])
	assert.Equal(t, StateStopped, sess.State())
}

func TestStopIsCooperative(t *testing.T) {
	cfg := config.Default()
	sess, _, _ := newTestSession(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		sess.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	assert.True(t, sess.Active())
	sess.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session ignored stop flag")
	}
	assert.False(t, sess.Active())
}

func TestProcessBypassesWakeWord(t *testing.T) {
	cfg := config.Default()
	sess, _, _ := newTestSession(cfg)

	got := sess.Process(context.Background(), "what time is it")
	assert.Contains(t, got, "03:04 PM")
}

func TestSessionEmitsEvents(t *testing.T) {
	cfg := config.Default()
	svc, _, _, _, _ := newTestServices()
	sp := &memSpeaker{}
	hub := events.NewHub()
	sub := hub.Subscribe()
	sess := NewSession(cfg, svc.NewRouter(), &scriptListener{script: []string{"jarvis hello"}}, sp, hub)

	sess.RunOnce(context.Background())

	var kinds []events.Kind
	for len(sub) > 0 {
		kinds = append(kinds, (<-sub).Kind)
	}
	assert.Contains(t, kinds, events.KindStatus)
	assert.Contains(t, kinds, events.KindTranscript)
	assert.Contains(t, kinds, events.KindResponse)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Listening", StateListening.String())
	assert.Equal(t, "Processing", StateProcessing.String())
	assert.Equal(t, "Speaking", StateSpeaking.String())
	assert.Equal(t, "Stopped", StateStopped.String())
}
