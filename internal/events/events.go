package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindStatus     Kind = "status"
	KindTranscript Kind = "transcript"
	KindResponse   Kind = "response"
	KindError      Kind = "error"
	KindLog        Kind = "log"
)

// Event is one item of the worker -> UI stream: a status change,
// a recognized utterance, a spoken response, or a log line.
type Event struct {
	ID   string    `json:"id"`
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

func New(kind Kind, text string) Event {
	return Event{
		ID:   uuid.NewString(),
		Kind: kind,
		Text: text,
		Time: time.Now(),
	}
}

// Hub fans events out from the single session worker to any number of
// subscribers (TUI, websocket feed). Slow subscribers drop events
// rather than stall the worker.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (h *Hub) Status(text string)     { h.Publish(New(KindStatus, text)) }
func (h *Hub) Transcript(text string) { h.Publish(New(KindTranscript, text)) }
func (h *Hub) Response(text string)   { h.Publish(New(KindResponse, text)) }
func (h *Hub) Error(text string)      { h.Publish(New(KindError, text)) }
func (h *Hub) Log(text string)        { h.Publish(New(KindLog, text)) }
