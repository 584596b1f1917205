//go:build !windows

package player

import "net"

// dialSocket connects to mpv's IPC endpoint, a unix domain socket here.
func dialSocket(socketPath string) (net.Conn, error) {
	return net.Dial("unix", socketPath)
}
