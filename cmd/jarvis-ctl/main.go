package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"jarvis/internal/ipc"
)

const usage = `usage: jarvis-ctl [flags] <command> [arg]

commands:
  trigger             listen for a single utterance
  start               start the continuous session loop
  stop                stop the session loop
  status              report session state
  conversation on|off toggle conversation mode
  say <text>          route a text command directly
  transcribe <file>   route a wav/mp3/ogg recording`

func main() {
	socket := cli.StringP("socket", "s", "/tmp/jarvis.sock", "Daemon control socket")
	cli.Parse()

	args := cli.Args()
	if len(args) == 0 {
		fmt.Println(usage)
		os.Exit(2)
	}

	msg := ipc.ControlMessage{Cmd: args[0]}
	if len(args) > 1 {
		msg.Arg = strings.Join(args[1:], " ")
	}

	reply, err := ipc.Send(*socket, msg)
	if err != nil {
		fmt.Println("jarvis-daemon not running:", err)
		os.Exit(1)
	}

	if reply.Text != "" {
		fmt.Println(reply.Text)
	}
	if !reply.OK {
		os.Exit(1)
	}
}
