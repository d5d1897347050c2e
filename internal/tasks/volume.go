package tasks

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

const defaultSink = "@DEFAULT_SINK@"

// VolumeControl adjusts the default output device. action is one of
// "up", "down", "mute".
func (a *Automation) VolumeControl(action string) error {
	switch runtime.GOOS {
	case "linux":
		return pactlVolume(action)
	case "darwin":
		return osascriptVolume(action)
	default:
		return fmt.Errorf("volume control not supported on %s", runtime.GOOS)
	}
}

func pactlVolume(action string) error {
	var args []string
	switch action {
	case "up":
		args = []string{"set-sink-volume", defaultSink, "+5%"}
	case "down":
		args = []string{"set-sink-volume", defaultSink, "-5%"}
	case "mute":
		args = []string{"set-sink-mute", defaultSink, "toggle"}
	default:
		return fmt.Errorf("unknown volume action %q", action)
	}

	if out, err := exec.Command("pactl", args...).CombinedOutput(); err != nil {
		return fmt.Errorf("pactl %s: %w (%s)", action, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func osascriptVolume(action string) error {
	var script string
	switch action {
	case "up":
		script = "set volume output volume ((output volume of (get volume settings)) + 10)"
	case "down":
		script = "set volume output volume ((output volume of (get volume settings)) - 10)"
	case "mute":
		script = "set volume with output muted"
	default:
		return fmt.Errorf("unknown volume action %q", action)
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript %s: %w", action, err)
	}
	return nil
}
