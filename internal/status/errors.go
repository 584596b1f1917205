// Package status defines the error taxonomy shared by timemark components.
//
// Errors are tagged with sentinel markers so callers can classify a failure
// without string matching: storage trouble falls back or surfaces a status
// line, a missing tool refuses extraction, and empty-selection operations are
// reported as "nothing selected" rather than treated as faults.
package status

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNothingSelected marks user-triggered operations that referenced no
	// existing timepoint. Recovered with a status message, never fatal.
	ErrNothingSelected = errors.New("nothing selected")
	// ErrNoMedia marks operations attempted without an active media file.
	ErrNoMedia = errors.New("no media loaded")
	// ErrToolMissing marks extraction attempts with ffmpeg unavailable.
	ErrToolMissing = errors.New("external tool missing")
	// ErrStorage marks metadata persistence failures after both the
	// preferred and fallback paths were exhausted.
	ErrStorage = errors.New("storage failure")
	// ErrPlayer marks failures talking to the playback host.
	ErrPlayer = errors.New("player unavailable")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStorage
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsUserStatus reports whether err is an expected user-facing condition
// (nothing selected, no media) rather than a fault worth a non-zero exit.
func IsUserStatus(err error) bool {
	return errors.Is(err, ErrNothingSelected) || errors.Is(err, ErrNoMedia)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
