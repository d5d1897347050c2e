package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	cli "github.com/spf13/pflag"

	log "log/slog"

	"jarvis/internal/app"
	"jarvis/internal/assistant"
	"jarvis/internal/config"
	"jarvis/internal/events"
	"jarvis/internal/ipc"
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
	logLevel := cli.StringP("log", "l", "info", "Log level")
	wsAddr := cli.StringP("events", "w", "", "Event feed listen address (e.g. :8092)")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)

	cfg := config.MustLoad(*cfgFile)
	cfg.FromEnv()
	if *wsAddr != "" {
		cfg.EventsAddr = *wsAddr
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Error("Failed to boot", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	log.Info("Boot up - successful", "wake_word", cfg.WakeWord)

	if cfg.EventsAddr != "" {
		go func() {
			if err := events.Serve(cfg.EventsAddr, a.Hub); err != nil {
				log.Error("Event feed failed", "err", err)
			}
		}()
	}

	d := &daemon{app: a}

	if err := ipc.StartServer(cfg.SocketPath, d.handle); err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	// the daemon is the blocking entry point: the loop runs until
	// stopped over ipc or interrupted
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d.start(ctx)
	<-ctx.Done()

	a.Session.Stop()
	log.Info("Shutting down")
}

type daemon struct {
	app *app.App
}

func (d *daemon) start(ctx context.Context) {
	if d.app.Session.Active() {
		return
	}
	go d.app.Session.Run(ctx)
}

func (d *daemon) handle(msg ipc.ControlMessage) ipc.Reply {
	sess := d.app.Session

	switch msg.Cmd {
	case "trigger":
		if sess.Active() {
			return ipc.Reply{OK: false, Text: "session loop already running"}
		}
		go sess.RunOnce(context.Background())
		return ipc.Reply{OK: true, Text: "listening"}

	case "start":
		if sess.Active() {
			return ipc.Reply{OK: false, Text: "already listening"}
		}
		d.start(context.Background())
		return ipc.Reply{OK: true, Text: "started"}

	case "stop":
		sess.Stop()
		return ipc.Reply{OK: true, Text: "stopped"}

	case "status":
		return ipc.Reply{OK: true, Text: fmt.Sprintf("state=%s active=%t conversation=%t",
			sess.State(), sess.Active(), sess.ConversationMode())}

	case "conversation":
		on := msg.Arg == "on"
		sess.SetConversationMode(on)
		return ipc.Reply{OK: true, Text: fmt.Sprintf("conversation=%t", on)}

	case "say":
		if msg.Arg == "" {
			return ipc.Reply{OK: false, Text: "empty command"}
		}
		return ipc.Reply{OK: true, Text: sess.Process(context.Background(), msg.Arg)}

	case "transcribe":
		text, err := d.app.Listener.TranscribeFile(context.Background(), msg.Arg)
		if err != nil {
			if errors.Is(err, assistant.ErrNoSpeech) {
				return ipc.Reply{OK: false, Text: "no speech in file"}
			}
			return ipc.Reply{OK: false, Text: err.Error()}
		}
		return ipc.Reply{OK: true, Text: sess.Process(context.Background(), text)}

	default:
		log.Warn("Unknown command", "cmd", msg.Cmd)
		return ipc.Reply{OK: false, Text: fmt.Sprintf("unknown command %q", msg.Cmd)}
	}
}
