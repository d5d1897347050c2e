package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"jarvis/internal/tasks"
)

// TaskRunner covers desktop automation: clock, screenshots,
// application and volume control, system stats.
type TaskRunner interface {
	Time() string
	Date() string
	Screenshot() (string, error)
	OpenApplication(name string) error
	OpenWebsite(url string) error
	CloseApplication(name string) error
	SystemInfo() (tasks.Info, error)
	VolumeControl(action string) error
}

// WebSearcher opens search result pages in the default browser and
// answers Wikipedia summary queries inline.
type WebSearcher interface {
	Google(query string) error
	Bing(query string) error
	DuckDuckGo(query string) error
	YouTube(query string) error
	Wikipedia(query string) (string, error)
}

// VisionSystem wraps camera capture, face detection and OCR.
type VisionSystem interface {
	CapturePhoto() (string, error)
	DetectFaces() (int, error)
	ReadText() (string, error)
}

// Conversationalist produces the fallback reply for utterances no
// command rule claims. It never fails: with no remote model configured
// it answers a fixed default.
type Conversationalist interface {
	Reply(ctx context.Context, message string) string
}

// Services are the external capabilities handlers dispatch into,
// injected explicitly instead of living as package globals.
type Services struct {
	Tasks  TaskRunner
	Search WebSearcher
	Vision VisionSystem
	Chat   Conversationalist

	// OnExit is called by the exit command to deactivate the session.
	OnExit func()
}

var greetings = []string{
	"Hello! How can I help you today?",
	"Hi there! What can I do for you?",
	"Hey! I'm here to assist you.",
	"Greetings! How may I be of service?",
}

// NewRouter wires the full command table. Registration order matters:
// "search X on Y" must come before the generic "search X".
func (s *Services) NewRouter() *Router {
	r := NewRouter(s.handleConversation)

	r.Register("time", `(what|tell).*time`, s.handleTime)
	r.Register("date", `(what|tell).*date`, s.handleDate)
	r.Register("screenshot", `screenshot`, s.handleScreenshot)
	r.Register("open", `open (.+)`, s.handleOpen)
	r.Register("search-on", `search (.+) on (.+)`, s.handleSearchOn)
	r.Register("search", `search (.+)`, s.handleSearch)
	r.Register("search-engine", `(google|bing|duckduckgo) (.+)`, s.handleSearchEngine)
	r.Register("youtube", `youtube (.+)`, s.handleYouTube)
	r.Register("wikipedia", `wikipedia (.+)`, s.handleWikipedia)
	r.Register("system-info", `system (info|status)`, s.handleSystemInfo)
	r.Register("take-photo", `take (photo|picture)`, s.handleTakePhoto)
	r.Register("detect-faces", `detect face`, s.handleDetectFaces)
	r.Register("read-text", `read text`, s.handleOCR)
	r.Register("volume", `(volume|sound) (up|down|mute)`, s.handleVolume)
	r.Register("close", `close (.+)`, s.handleCloseApp)
	r.Register("exit", `(exit|quit|goodbye|bye)`, s.handleExit)
	r.Register("greeting", `(hello|hi|hey)`, s.handleGreeting)

	return r
}

func (s *Services) handleTime(_ context.Context, _ string, _ []string) (string, error) {
	return fmt.Sprintf("The current time is %s", s.Tasks.Time()), nil
}

func (s *Services) handleDate(_ context.Context, _ string, _ []string) (string, error) {
	return fmt.Sprintf("Today is %s", s.Tasks.Date()), nil
}

func (s *Services) handleScreenshot(_ context.Context, _ string, _ []string) (string, error) {
	path, err := s.Tasks.Screenshot()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Screenshot saved to %s", path), nil
}

func (s *Services) handleOpen(_ context.Context, cmd string, _ []string) (string, error) {
	name := strings.TrimSpace(strings.Replace(cmd, "open", "", 1))

	if isWebsite(name) {
		if err := s.Tasks.OpenWebsite(name); err != nil {
			return fmt.Sprintf("Failed to open %s", name), nil
		}
	} else {
		if err := s.Tasks.OpenApplication(name); err != nil {
			return fmt.Sprintf("Failed to open %s", name), nil
		}
	}
	return fmt.Sprintf("Opening %s", name), nil
}

func isWebsite(name string) bool {
	for _, d := range []string{".com", ".org", ".net", "www"} {
		if strings.Contains(name, d) {
			return true
		}
	}
	return false
}

func (s *Services) handleSearchOn(_ context.Context, cmd string, _ []string) (string, error) {
	parts := strings.SplitN(cmd, " on ", 2)
	if len(parts) != 2 {
		return "Could not understand search command", nil
	}
	query := strings.TrimSpace(strings.Replace(parts[0], "search", "", 1))
	engine := strings.TrimSpace(parts[1])

	switch {
	case strings.Contains(engine, "google"):
		_ = s.Search.Google(query)
	case strings.Contains(engine, "bing"):
		_ = s.Search.Bing(query)
	case strings.Contains(engine, "duckduckgo"):
		_ = s.Search.DuckDuckGo(query)
	}
	return fmt.Sprintf("Searching %s on %s", query, engine), nil
}

func (s *Services) handleSearch(_ context.Context, cmd string, _ []string) (string, error) {
	query := strings.TrimSpace(strings.Replace(cmd, "search", "", 1))
	if err := s.Search.Google(query); err != nil {
		return "", err
	}
	return fmt.Sprintf("Searching for %s", query), nil
}

func (s *Services) handleSearchEngine(_ context.Context, _ string, m []string) (string, error) {
	engine, query := m[1], m[2]

	var err error
	switch engine {
	case "google":
		err = s.Search.Google(query)
	case "bing":
		err = s.Search.Bing(query)
	case "duckduckgo":
		err = s.Search.DuckDuckGo(query)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Searching %s on %s", query, engine), nil
}

func (s *Services) handleYouTube(_ context.Context, cmd string, _ []string) (string, error) {
	query := strings.TrimSpace(strings.Replace(cmd, "youtube", "", 1))
	if err := s.Search.YouTube(query); err != nil {
		return "", err
	}
	return fmt.Sprintf("Searching YouTube for %s", query), nil
}

func (s *Services) handleWikipedia(_ context.Context, cmd string, _ []string) (string, error) {
	query := strings.TrimSpace(strings.Replace(cmd, "wikipedia", "", 1))
	result, err := s.Search.Wikipedia(query)
	if err != nil || result == "" {
		return "Could not find information on Wikipedia", nil
	}
	return result, nil
}

func (s *Services) handleSystemInfo(_ context.Context, _ string, _ []string) (string, error) {
	info, err := s.Tasks.SystemInfo()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("System: %s, CPU usage: %s, Memory usage: %s",
		info.System, info.CPUUsage, info.MemoryUsage), nil
}

func (s *Services) handleTakePhoto(_ context.Context, _ string, _ []string) (string, error) {
	path, err := s.Vision.CapturePhoto()
	if err != nil {
		return "Failed to capture photo", nil
	}
	return fmt.Sprintf("Photo captured and saved to %s", path), nil
}

func (s *Services) handleDetectFaces(_ context.Context, _ string, _ []string) (string, error) {
	count, err := s.Vision.DetectFaces()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "No faces detected", nil
	}
	plural := ""
	if count > 1 {
		plural = "s"
	}
	return fmt.Sprintf("I detected %d face%s", count, plural), nil
}

func (s *Services) handleOCR(_ context.Context, _ string, _ []string) (string, error) {
	text, err := s.Vision.ReadText()
	if err != nil {
		return "Failed to capture image for OCR", nil
	}
	if text == "" {
		return "No text found in image", nil
	}
	return fmt.Sprintf("I found this text: %s", text), nil
}

func (s *Services) handleVolume(_ context.Context, _ string, m []string) (string, error) {
	action := m[2]
	if err := s.Tasks.VolumeControl(action); err != nil {
		return "Failed to control volume", nil
	}
	return fmt.Sprintf("Volume %s", action), nil
}

func (s *Services) handleCloseApp(_ context.Context, _ string, m []string) (string, error) {
	name := m[1]
	if err := s.Tasks.CloseApplication(name); err != nil {
		return fmt.Sprintf("Could not close %s", name), nil
	}
	return fmt.Sprintf("Closing %s", name), nil
}

func (s *Services) handleExit(_ context.Context, _ string, _ []string) (string, error) {
	if s.OnExit != nil {
		s.OnExit()
	}
	return "Goodbye! Have a great day.", nil
}

func (s *Services) handleGreeting(_ context.Context, _ string, _ []string) (string, error) {
	return greetings[rand.Intn(len(greetings))], nil
}

func (s *Services) handleConversation(ctx context.Context, cmd string, _ []string) (string, error) {
	return s.Chat.Reply(ctx, cmd), nil
}
