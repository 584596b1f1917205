package player

import (
	"net"

	"github.com/Microsoft/go-winio"
)

// dialSocket connects to mpv's IPC endpoint. On Windows mpv serves
// --input-ipc-server over a named pipe (\\.\pipe\...), not a socket.
func dialSocket(socketPath string) (net.Conn, error) {
	return winio.DialPipe(socketPath, nil)
}
