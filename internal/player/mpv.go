package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"sync/atomic"

	"timemark/internal/status"
)

// ErrNotConnected is returned for operations on a closed client.
var ErrNotConnected = errors.New("mpv: not connected")

// mpvNoValue is the error mpv reports for properties with no current value,
// e.g. time-pos before a file is loaded.
const mpvNoValue = "property unavailable"

type ipcRequest struct {
	Command   []any  `json:"command"`
	RequestID uint64 `json:"request_id"`
}

type ipcResponse struct {
	Data      any    `json:"data"`
	RequestID uint64 `json:"request_id"`
	Error     string `json:"error"`
}

var requestID atomic.Uint64

// MPV is a playback host backed by mpv's JSON IPC socket.
type MPV struct {
	socketPath string
	mu         sync.Mutex
	conn       net.Conn
	reader     *bufio.Reader
}

// Dial connects to the mpv IPC endpoint: a unix socket, or a named pipe on
// Windows.
func Dial(socketPath string) (*MPV, error) {
	conn, err := dialSocket(socketPath)
	if err != nil {
		return nil, status.Wrap(status.ErrPlayer, "player", "connect",
			fmt.Sprintf("socket %s (is mpv running with --input-ipc-server?)", socketPath), err)
	}
	return &MPV{
		socketPath: socketPath,
		conn:       conn,
		reader:     bufio.NewReader(conn),
	}, nil
}

// Close closes the IPC connection.
func (c *MPV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// MediaLocation returns the URI of the active media, empty when idle.
func (c *MPV) MediaLocation() (string, error) {
	value, err := c.getProperty("path")
	if err != nil {
		if isNoValue(err) {
			return "", nil
		}
		return "", err
	}
	location, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("mpv: unexpected path value type %T", value)
	}
	return location, nil
}

// PositionMicros returns the playback position in integer microseconds.
func (c *MPV) PositionMicros() (int64, error) {
	value, err := c.getProperty("time-pos")
	if err != nil {
		return 0, err
	}
	seconds, err := toFloat64(value)
	if err != nil {
		return 0, err
	}
	if seconds < 0 {
		seconds = 0
	}
	return int64(math.Round(seconds * 1e6)), nil
}

// SetPositionMicros seeks the player.
func (c *MPV) SetPositionMicros(timeUS int64) error {
	if timeUS < 0 {
		timeUS = 0
	}
	_, err := c.sendCommand("set_property", "time-pos", float64(timeUS)/1e6)
	return err
}

func (c *MPV) getProperty(name string) (any, error) {
	return c.sendCommand("get_property", name)
}

func isNoValue(err error) bool {
	return err != nil && err.Error() == "mpv: "+mpvNoValue
}

// sendCommand writes one newline-terminated JSON request and reads response
// lines until the matching request_id arrives; event lines in between are
// skipped.
func (c *MPV) sendCommand(command string, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	cmdArray := make([]any, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := requestID.Add(1)
	data, err := json.Marshal(ipcRequest{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: marshal command: %w", err)
	}
	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return nil, status.Wrap(status.ErrPlayer, "player", "send", command, err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, status.Wrap(status.ErrPlayer, "player", "read", command, err)
		}
		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.RequestID != reqID {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp.Data, nil
	}
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type %T", v)
	}
}
