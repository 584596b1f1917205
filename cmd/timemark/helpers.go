package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"timemark/internal/metafile"
	"timemark/internal/timepoint"
)

// parseTimeSpec converts a user-supplied position to microseconds. Accepted
// forms: plain seconds ("95.5"), MM:SS, and HH:MM:SS, each with an optional
// fractional part.
func parseTimeSpec(spec string) (int64, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty time")
	}

	parts := strings.Split(spec, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", spec)
	}

	var total float64
	for _, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("invalid time %q", spec)
		}
		total = total*60 + value
	}
	return int64(math.Round(total * 1e6)), nil
}

// loadStore reads the timepoint store for the given media. A missing or
// unreadable metadata file yields an empty store.
func (c *commandContext) loadStore(ref media) (*timepoint.Store, *metafile.Engine, error) {
	eng, err := c.engine()
	if err != nil {
		return nil, nil, err
	}
	store, _ := eng.Load(ref.Path, ref.Identifier)
	return store, eng, nil
}

func pointRows(points []timepoint.Timepoint) [][]string {
	rows := make([][]string, 0, len(points))
	for i, tp := range points {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			tp.Label,
			tp.Formatted,
			tp.Remark,
		})
	}
	return rows
}
