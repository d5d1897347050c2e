package ipc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "jarvis.sock")

	err := StartServer(sock, func(msg ControlMessage) Reply {
		if msg.Cmd == "say" {
			return Reply{OK: true, Text: "heard: " + msg.Arg}
		}
		return Reply{OK: false, Text: "unknown command"}
	})
	require.NoError(t, err)

	reply, err := Send(sock, ControlMessage{Cmd: "say", Arg: "hello"})
	require.NoError(t, err)
	assert.True(t, reply.OK)
	assert.Equal(t, "heard: hello", reply.Text)

	reply, err = Send(sock, ControlMessage{Cmd: "bogus"})
	require.NoError(t, err)
	assert.False(t, reply.OK)
}

func TestSendWithoutServer(t *testing.T) {
	_, err := Send(filepath.Join(t.TempDir(), "nope.sock"), ControlMessage{Cmd: "status"})
	assert.Error(t, err)
}
