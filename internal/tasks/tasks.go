package tasks

import (
	"fmt"
	log "log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Info is a human-oriented snapshot of system load.
type Info struct {
	System          string
	CPUUsage        string
	MemoryUsage     string
	DiskUsage       string
	MemoryAvailable string
}

// Automation wraps desktop tasks: clock queries, launching and killing
// applications, screenshots, volume.
type Automation struct {
	ScreenshotDir string

	now func() time.Time
}

func NewAutomation(screenshotDir string) *Automation {
	return &Automation{
		ScreenshotDir: screenshotDir,
		now:           time.Now,
	}
}

func (a *Automation) Time() string {
	return a.now().Format("03:04 PM")
}

func (a *Automation) Date() string {
	return a.now().Format("Monday, January 02, 2006")
}

// commonApps maps spoken names to launchable commands per platform.
func commonApps() map[string]string {
	switch runtime.GOOS {
	case "windows":
		return map[string]string{
			"notepad":    "notepad.exe",
			"calculator": "calc.exe",
			"chrome":     "chrome",
			"firefox":    "firefox",
			"edge":       "msedge",
			"explorer":   "explorer.exe",
			"terminal":   "cmd.exe",
		}
	case "darwin":
		return map[string]string{
			"notepad":    "TextEdit",
			"calculator": "Calculator",
			"chrome":     "Google Chrome",
			"firefox":    "Firefox",
			"explorer":   "Finder",
			"terminal":   "Terminal",
		}
	default:
		return map[string]string{
			"notepad":    "gedit",
			"calculator": "gnome-calculator",
			"chrome":     "google-chrome",
			"firefox":    "firefox",
			"explorer":   "nautilus",
			"terminal":   "x-terminal-emulator",
		}
	}
}

func (a *Automation) OpenApplication(name string) error {
	target := name
	if mapped, ok := commonApps()[strings.ToLower(name)]; ok {
		target = mapped
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-a", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", target)
	default:
		cmd = exec.Command(target)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open application %q: %w", name, err)
	}
	log.Info("Opened application", "name", name, "target", target)
	return nil
}

func (a *Automation) OpenWebsite(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open website %q: %w", url, err)
	}
	log.Info("Opened website", "url", url)
	return nil
}

// CloseApplication kills the first running process whose name contains
// the given name, case-insensitive.
func (a *Automation) CloseApplication(name string) error {
	procs, err := process.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	needle := strings.ToLower(name)
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(pname), needle) {
			if err := p.Kill(); err != nil {
				return fmt.Errorf("kill %s (pid %d): %w", pname, p.Pid, err)
			}
			log.Info("Closed application", "name", pname, "pid", p.Pid)
			return nil
		}
	}
	return fmt.Errorf("no running process matches %q", name)
}

func (a *Automation) SystemInfo() (Info, error) {
	percents, err := cpu.Percent(time.Second, false)
	if err != nil || len(percents) == 0 {
		return Info{}, fmt.Errorf("cpu usage: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return Info{}, fmt.Errorf("memory usage: %w", err)
	}

	du, err := disk.Usage("/")
	if err != nil {
		return Info{}, fmt.Errorf("disk usage: %w", err)
	}

	return Info{
		System:          runtime.GOOS,
		CPUUsage:        fmt.Sprintf("%.1f%%", percents[0]),
		MemoryUsage:     fmt.Sprintf("%.1f%%", vm.UsedPercent),
		DiskUsage:       fmt.Sprintf("%.1f%%", du.UsedPercent),
		MemoryAvailable: fmt.Sprintf("%.2f GB", float64(vm.Available)/(1<<30)),
	}, nil
}
