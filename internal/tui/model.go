package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jarvis/internal/assistant"
	"jarvis/internal/events"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	youStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)
)

const helpText = `Voice controls
  s  start listening      o  listen once
  x  stop listening       m  toggle conversation mode
  c  clear log            h  toggle this help
  q  exit

Say "<wake word> what time is it", "open notepad", "search cats on bing",
"take a screenshot", "detect faces", "read text", "goodbye" ... anything
else goes to the AI fallback.`

type eventMsg events.Event

type sessionDoneMsg struct{}

// Model is the terminal shell around one assistant session: a
// scrolling transcript, a status line and single-key voice controls.
// The session runs on its own goroutine; the only state flowing back
// is the event stream, and the only state flowing in is the stop flag.
type Model struct {
	session *assistant.Session
	hub     *events.Hub
	sub     chan events.Event

	viewport viewport.Model
	lines    []string
	status   string
	showHelp bool
	ready    bool
	running  bool

	cancel context.CancelFunc
}

func NewModel(session *assistant.Session, hub *events.Hub) *Model {
	return &Model{
		session: session,
		hub:     hub,
		sub:     hub.Subscribe(),
		status:  "Ready",
		lines: []string{
			"Jarvis initialized",
			"Press 's' to start listening, 'h' for help",
			strings.Repeat("=", 50),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.sub
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func (m *Model) startContinuous() {
	if m.running {
		return
	}
	m.running = true
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go func() {
		m.session.Run(ctx)
		m.hub.Log("Stopped listening")
	}()
	m.appendLine("Started continuous listening mode")
}

func (m *Model) stop() {
	if !m.running {
		return
	}
	m.running = false
	m.session.Stop()
	if m.cancel != nil {
		m.cancel()
	}
	m.status = "Ready"
}

func (m *Model) listenOnce() tea.Cmd {
	if m.running {
		return nil
	}
	m.running = true
	return func() tea.Msg {
		m.session.RunOnce(context.Background())
		return sessionDoneMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 7
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case eventMsg:
		switch msg.Kind {
		case events.KindStatus:
			m.status = msg.Text
		case events.KindError:
			m.appendLine(errStyle.Render(msg.Text))
		default:
			m.appendLine(msg.Text)
		}
		return m, m.waitForEvent()

	case sessionDoneMsg:
		m.running = false
		m.status = "Ready"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.startContinuous()
		case "x":
			m.stop()
		case "o":
			return m, m.listenOnce()
		case "c":
			m.lines = []string{"Log cleared"}
			m.refresh()
		case "m":
			on := !m.session.ConversationMode()
			m.session.SetConversationMode(on)
			state := "disabled"
			if on {
				state = "enabled"
			}
			m.appendLine(fmt.Sprintf("Conversation mode %s", state))
		case "h":
			m.showHelp = !m.showHelp
		case "q", "ctrl+c":
			m.stop()
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) appendLine(line string) {
	if strings.HasPrefix(line, "You:") {
		line = youStyle.Render(line)
	}
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("J.A.R.V.I.S — voice assistant"))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(borderStyle.Render(helpText))
	} else {
		b.WriteString(borderStyle.Render(m.viewport.View()))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Status: %s", m.status)))
	mode := "wake word"
	if m.session.ConversationMode() {
		mode = "conversation"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("  [%s mode]", mode)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s start · x stop · o once · c clear · m mode · h help · q quit"))
	return b.String()
}
