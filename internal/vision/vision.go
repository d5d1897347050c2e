package vision

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	pigo "github.com/esimov/pigo/core"
	"github.com/otiai10/gosseract/v2"
)

// System wraps the camera, face detection and OCR. The camera is an
// external capability reached through ffmpeg; face detection runs on
// the captured frame with a pigo cascade loaded from CascadePath.
type System struct {
	Device      string // camera device, e.g. /dev/video0
	CascadePath string
	OutputDir   string
	Language    string // tesseract language, e.g. "eng"

	now func() time.Time
}

func NewSystem(cascadePath, outputDir string) *System {
	dev := "/dev/video0"
	if runtime.GOOS == "darwin" {
		dev = "0"
	}
	if outputDir == "" {
		home, _ := os.UserHomeDir()
		outputDir = filepath.Join(home, "Pictures")
	}
	return &System{
		Device:      dev,
		CascadePath: cascadePath,
		OutputDir:   outputDir,
		Language:    "eng",
		now:         time.Now,
	}
}

// CapturePhoto grabs a single frame from the camera into a timestamped
// JPEG and returns its path.
func (s *System) CapturePhoto() (string, error) {
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}
	path := filepath.Join(s.OutputDir, fmt.Sprintf("capture_%s.jpg", s.now().Format("20060102_150405")))

	var args []string
	switch runtime.GOOS {
	case "linux":
		args = []string{"-f", "v4l2", "-i", s.Device, "-frames:v", "1", "-y", path}
	case "darwin":
		args = []string{"-f", "avfoundation", "-framerate", "30", "-i", s.Device, "-frames:v", "1", "-y", path}
	default:
		return "", fmt.Errorf("camera capture not supported on %s", runtime.GOOS)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ffmpeg", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg capture: %w (%s)", err, lastLine(out))
	}

	log.Info("Captured photo", "path", path)
	return path, nil
}

// DetectFaces captures a frame and counts faces on it.
func (s *System) DetectFaces() (int, error) {
	path, err := s.CapturePhoto()
	if err != nil {
		return 0, err
	}
	return s.CountFaces(path)
}

// CountFaces runs the pigo cascade over an image file.
func (s *System) CountFaces(imagePath string) (int, error) {
	if s.CascadePath == "" {
		return 0, fmt.Errorf("face cascade not configured")
	}

	cascade, err := os.ReadFile(s.CascadePath)
	if err != nil {
		return 0, fmt.Errorf("read cascade: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return 0, fmt.Errorf("unpack cascade: %w", err)
	}

	src, err := pigo.GetImage(imagePath)
	if err != nil {
		return 0, fmt.Errorf("load image: %w", err)
	}

	pixels := pigo.RgbToGrayscale(src)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y

	params := pigo.CascadeParams{
		MinSize:     60,
		MaxSize:     1000,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := classifier.RunCascade(params, 0.0)
	dets = classifier.ClusterDetections(dets, 0.2)

	count := 0
	for _, d := range dets {
		if d.Q > 5.0 {
			count++
		}
	}

	log.Info("Face detection finished", "path", imagePath, "faces", count)
	return count, nil
}

// ReadText captures a frame and OCRs it.
func (s *System) ReadText() (string, error) {
	path, err := s.CapturePhoto()
	if err != nil {
		return "", err
	}
	return s.OCR(path)
}

// OCR extracts text from an image file with tesseract.
func (s *System) OCR(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.Language); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
