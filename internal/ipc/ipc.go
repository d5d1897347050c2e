package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
)

// ControlMessage is one request to the daemon's unix control socket.
type ControlMessage struct {
	Cmd string `json:"cmd"`
	Arg string `json:"arg,omitempty"`
}

// Reply is the daemon's answer.
type Reply struct {
	OK   bool   `json:"ok"`
	Text string `json:"text,omitempty"`
}

// StartServer listens on a unix socket and serves control requests.
// Each connection carries one request/reply pair.
func StartServer(socketPath string, handler func(ControlMessage) Reply) error {
	os.Remove(socketPath)

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen %s: %w", socketPath, err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				continue
			}
			go handleConn(conn, handler)
		}
	}()

	return nil
}

func handleConn(conn net.Conn, handler func(ControlMessage) Reply) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return
	}

	reply := handler(msg)
	_ = json.NewEncoder(conn).Encode(reply)
}

// Send delivers one control message and waits for the reply.
func Send(socketPath string, msg ControlMessage) (Reply, error) {
	conn, err := net.DialTimeout("unix", socketPath, 2*time.Second)
	if err != nil {
		return Reply{}, err
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return Reply{}, fmt.Errorf("send: %w", err)
	}

	var reply Reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}
