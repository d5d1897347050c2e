package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/tasks"
)

// fakes for the injected capabilities

type fakeTasks struct {
	openedApps []string
	openedURLs []string
	closed     []string
	volume     []string
	shotErr    error
}

func (f *fakeTasks) Time() string { return "03:04 PM" }
func (f *fakeTasks) Date() string { return "Friday, August 28, 2026" }

func (f *fakeTasks) Screenshot() (string, error) {
	if f.shotErr != nil {
		return "", f.shotErr
	}
	return "/home/u/Pictures/screenshot_x.png", nil
}

func (f *fakeTasks) OpenApplication(name string) error {
	f.openedApps = append(f.openedApps, name)
	return nil
}

func (f *fakeTasks) OpenWebsite(url string) error {
	f.openedURLs = append(f.openedURLs, url)
	return nil
}

func (f *fakeTasks) CloseApplication(name string) error {
	f.closed = append(f.closed, name)
	return nil
}

func (f *fakeTasks) SystemInfo() (tasks.Info, error) {
	return tasks.Info{System: "linux", CPUUsage: "12.0%", MemoryUsage: "40.0%"}, nil
}

func (f *fakeTasks) VolumeControl(action string) error {
	f.volume = append(f.volume, action)
	return nil
}

type fakeSearch struct {
	calls []string
}

func (f *fakeSearch) record(engine, q string) error {
	f.calls = append(f.calls, engine+":"+q)
	return nil
}

func (f *fakeSearch) Google(q string) error     { return f.record("google", q) }
func (f *fakeSearch) Bing(q string) error       { return f.record("bing", q) }
func (f *fakeSearch) DuckDuckGo(q string) error { return f.record("duckduckgo", q) }
func (f *fakeSearch) YouTube(q string) error    { return f.record("youtube", q) }

func (f *fakeSearch) Wikipedia(q string) (string, error) {
	f.calls = append(f.calls, "wikipedia:"+q)
	return "Go is a programming language.", nil
}

type fakeVision struct {
	faces int
	text  string
}

func (f *fakeVision) CapturePhoto() (string, error) { return "/tmp/capture.jpg", nil }
func (f *fakeVision) DetectFaces() (int, error)     { return f.faces, nil }
func (f *fakeVision) ReadText() (string, error)     { return f.text, nil }

type fakeChat struct {
	reply string
	asked []string
}

func (f *fakeChat) Reply(_ context.Context, msg string) string {
	f.asked = append(f.asked, msg)
	if f.reply == "" {
		return "I'm not sure how to help with that. Try asking me to search, open apps, or perform tasks."
	}
	return f.reply
}

func newTestServices() (*Services, *fakeTasks, *fakeSearch, *fakeVision, *fakeChat) {
	ft := &fakeTasks{}
	fs := &fakeSearch{}
	fv := &fakeVision{}
	fc := &fakeChat{}
	return &Services{Tasks: ft, Search: fs, Vision: fv, Chat: fc}, ft, fs, fv, fc
}

func TestRouteTimeQuery(t *testing.T) {
	svc, _, _, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "what time is it")
	assert.Contains(t, got, "03:04 PM")
}

func TestRouteOpenApplication(t *testing.T) {
	svc, ft, _, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "open notepad")
	assert.Equal(t, "Opening notepad", got)
	assert.Equal(t, []string{"notepad"}, ft.openedApps)
	assert.Empty(t, ft.openedURLs)
}

func TestRouteOpenWebsite(t *testing.T) {
	svc, ft, _, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "open github.com")
	assert.Equal(t, "Opening github.com", got)
	assert.Equal(t, []string{"github.com"}, ft.openedURLs)
	assert.Empty(t, ft.openedApps)
}

func TestFirstMatchWins(t *testing.T) {
	svc, _, fs, _, _ := newTestServices()
	r := svc.NewRouter()

	// both "search (.+) on (.+)" and "search (.+)" match; the more
	// specific rule is registered first and must win
	got := r.Route(context.Background(), "search cats on bing")
	assert.Equal(t, "Searching cats on bing", got)
	assert.Equal(t, []string{"bing:cats"}, fs.calls)
}

func TestGenericSearchStillReachable(t *testing.T) {
	svc, _, fs, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "search weather in berlin")
	assert.Equal(t, "Searching for weather in berlin", got)
	assert.Equal(t, []string{"google:weather in berlin"}, fs.calls)
}

func TestSearchEngineRule(t *testing.T) {
	svc, _, fs, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "duckduckgo anonymous browsing")
	assert.Equal(t, "Searching anonymous browsing on duckduckgo", got)
	assert.Equal(t, []string{"duckduckgo:anonymous browsing"}, fs.calls)
}

func TestRouteFallbackDefault(t *testing.T) {
	svc, _, _, _, fc := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "recite a poem about rain")
	assert.Equal(t, fc.Reply(context.Background(), ""), got)
	assert.Contains(t, fc.asked, "recite a poem about rain")
}

func TestRouteEmptyUtteranceFallsBack(t *testing.T) {
	svc, _, _, _, fc := newTestServices()
	r := svc.NewRouter()

	r.Route(context.Background(), "")
	assert.Equal(t, []string{""}, fc.asked)
}

func TestHandlerErrorIsCaught(t *testing.T) {
	svc, ft, _, _, _ := newTestServices()
	ft.shotErr = errors.New("no display found")
	r := svc.NewRouter()

	got := r.Route(context.Background(), "take a screenshot")
	assert.Equal(t, "Error processing command: no display found", got)

	// router keeps working after a handler failure
	assert.Contains(t, r.Route(context.Background(), "what time is it"), "03:04 PM")
}

func TestHandlerPanicIsCaught(t *testing.T) {
	r := NewRouter(func(context.Context, string, []string) (string, error) {
		return "fallback", nil
	})
	r.Register("boom", `boom`, func(context.Context, string, []string) (string, error) {
		panic("exploded")
	})

	got := r.Route(context.Background(), "boom")
	assert.Equal(t, "Error processing command: exploded", got)
}

func TestDetectFaces(t *testing.T) {
	svc, _, _, fv, _ := newTestServices()
	r := svc.NewRouter()

	fv.faces = 0
	assert.Equal(t, "No faces detected", r.Route(context.Background(), "detect faces"))

	fv.faces = 1
	assert.Equal(t, "I detected 1 face", r.Route(context.Background(), "detect faces"))

	fv.faces = 3
	assert.Equal(t, "I detected 3 faces", r.Route(context.Background(), "detect faces"))
}

func TestReadText(t *testing.T) {
	svc, _, _, fv, _ := newTestServices()
	r := svc.NewRouter()

	fv.text = "EXIT 12"
	assert.Equal(t, "I found this text: EXIT 12", r.Route(context.Background(), "read text"))

	fv.text = ""
	assert.Equal(t, "No text found in image", r.Route(context.Background(), "read text"))
}

func TestVolumeRule(t *testing.T) {
	svc, ft, _, _, _ := newTestServices()
	r := svc.NewRouter()

	assert.Equal(t, "Volume up", r.Route(context.Background(), "volume up"))
	assert.Equal(t, "Volume mute", r.Route(context.Background(), "sound mute"))
	assert.Equal(t, []string{"up", "mute"}, ft.volume)
}

func TestExitFlipsSession(t *testing.T) {
	svc, _, _, _, _ := newTestServices()
	exited := false
	svc.OnExit = func() { exited = true }
	r := svc.NewRouter()

	got := r.Route(context.Background(), "goodbye")
	assert.Equal(t, "Goodbye! Have a great day.", got)
	assert.True(t, exited)
}

func TestGreetingIsKnown(t *testing.T) {
	svc, _, _, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "hello")
	assert.Contains(t, greetings, got)
}

func TestWikipediaRule(t *testing.T) {
	svc, _, fs, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "wikipedia go language")
	assert.Equal(t, "Go is a programming language.", got)
	require.Equal(t, []string{"wikipedia:go language"}, fs.calls)
}

func TestRuleOrderMatchesRegistration(t *testing.T) {
	svc, _, _, _, _ := newTestServices()
	r := svc.NewRouter()

	rules := r.Rules()
	require.True(t, len(rules) > 5)

	idx := map[string]int{}
	for i, rule := range rules {
		idx[rule.Name] = i
	}
	// load-bearing orderings
	assert.Less(t, idx["search-on"], idx["search"])
	assert.Less(t, idx["search"], idx["search-engine"])
}

func TestSystemInfoRule(t *testing.T) {
	svc, _, _, _, _ := newTestServices()
	r := svc.NewRouter()

	got := r.Route(context.Background(), "system status")
	assert.Equal(t, fmt.Sprintf("System: %s, CPU usage: %s, Memory usage: %s", "linux", "12.0%", "40.0%"), got)
}
