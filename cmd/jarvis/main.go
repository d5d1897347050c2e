package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	cli "github.com/spf13/pflag"

	log "log/slog"

	"jarvis/internal/app"
	"jarvis/internal/config"
	"jarvis/internal/tui"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	cfgFile := cli.StringP("config", "c", "config/config.json", "Config file path")
	logLevel := cli.StringP("log", "l", "warn", "Log level")
	cli.Parse()

	// logs go to a file so they don't fight the TUI for the terminal
	logOut, err := os.OpenFile("jarvis.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logOut = os.Stderr
	}
	log.SetDefault(log.New(tint.NewHandler(logOut, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	godotenv.Load(*envFile)

	cfg := config.MustLoad(*cfgFile)
	cfg.FromEnv()

	a, err := app.New(cfg)
	if err != nil {
		log.Error("Failed to boot", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	program := tea.NewProgram(tui.NewModel(a.Session, a.Hub), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error("TUI failed", "err", err)
		os.Exit(1)
	}
}
