package websearch

import (
	"fmt"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const wikipediaSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

// Searcher opens result pages in the default browser and answers
// Wikipedia summary queries inline.
type Searcher struct {
	client *http.Client

	// openURL is swappable for tests.
	openURL func(url string) error
}

func NewSearcher() *Searcher {
	return &Searcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		openURL: openInBrowser,
	}
}

func openInBrowser(u string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

func GoogleURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func BingURL(query string) string {
	return "https://www.bing.com/search?q=" + url.QueryEscape(query)
}

func DuckDuckGoURL(query string) string {
	return "https://duckduckgo.com/?q=" + url.QueryEscape(query)
}

func YouTubeURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

func (s *Searcher) Google(query string) error {
	log.Info("Searching Google", "query", query)
	return s.openURL(GoogleURL(query))
}

func (s *Searcher) Bing(query string) error {
	log.Info("Searching Bing", "query", query)
	return s.openURL(BingURL(query))
}

func (s *Searcher) DuckDuckGo(query string) error {
	log.Info("Searching DuckDuckGo", "query", query)
	return s.openURL(DuckDuckGoURL(query))
}

func (s *Searcher) YouTube(query string) error {
	log.Info("Searching YouTube", "query", query)
	return s.openURL(YouTubeURL(query))
}

// Wikipedia fetches the article summary for query via the REST summary
// endpoint. Disambiguation and missing pages come back as friendly
// strings, not errors.
func (s *Searcher) Wikipedia(query string) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	resp, err := s.client.Get(wikipediaSummaryURL + url.PathEscape(title))
	if err != nil {
		return "", fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "No Wikipedia page found for this query.", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("wikipedia response: %w", err)
	}

	if gjson.GetBytes(body, "type").String() == "disambiguation" {
		return "Multiple results found. Please be more specific.", nil
	}

	extract := gjson.GetBytes(body, "extract").String()
	if extract == "" {
		return "No Wikipedia page found for this query.", nil
	}
	return extract, nil
}
