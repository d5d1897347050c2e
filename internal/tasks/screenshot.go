package tasks

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/kbinani/screenshot"
)

// Screenshot captures the primary display to a timestamped PNG under
// ScreenshotDir and returns the file path.
func (a *Automation) Screenshot() (string, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return "", fmt.Errorf("no active displays")
	}

	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(0))
	if err != nil {
		return "", fmt.Errorf("capture display: %w", err)
	}

	if err := os.MkdirAll(a.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot dir: %w", err)
	}

	name := fmt.Sprintf("screenshot_%s.png", a.now().Format("20060102_150405"))
	path := filepath.Join(a.ScreenshotDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, nil
}
