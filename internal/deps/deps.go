// Package deps probes the external binaries timemark relies on.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency timemark relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// FFmpegAvailable is the liveness probe run before any extraction attempt.
func FFmpegAvailable(ffmpegBinary string) Status {
	results := CheckBinaries([]Requirement{{
		Name:        "FFmpeg",
		Command:     ffmpegBinary,
		Description: "Extracts frame sequences and clips",
	}})
	return results[0]
}

// Requirements lists everything timemark can use, for status reporting.
func Requirements(ffmpegBinary, playerBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Description: "Extracts frame sequences and clips",
		},
		{
			Name:        "mpv",
			Command:     playerBinary,
			Description: "Playback host queried for position and media",
			Optional:    true,
		},
	}
}
