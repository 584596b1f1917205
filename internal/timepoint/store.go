package timepoint

import (
	"fmt"
	"sort"
	"strconv"

	"timemark/internal/status"
)

// Timepoint is a labeled marker at a specific offset into a media file.
type Timepoint struct {
	// Time is the offset in microseconds from media start and the source
	// of truth for ordering.
	Time int64
	// Label is derived from the 1-based position in the sorted collection
	// and recomputed whenever membership or order changes.
	Label string
	// Formatted is the human-readable HH:MM:SS.mmm form of Time, computed
	// once at creation and never recomputed afterwards.
	Formatted string
	// Remark is free user text, editable independently of ordering.
	Remark string
}

// Store is the in-memory ordered timepoint collection for one media file.
type Store struct {
	points []Timepoint
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// FromRecords builds a store from loaded records. Formatted and Remark are
// preserved as read; ordering and labels are re-established so the sorted,
// contiguously-labeled invariant holds even for hand-edited files.
func FromRecords(records []Timepoint) *Store {
	s := &Store{points: make([]Timepoint, len(records))}
	copy(s.points, records)
	s.reorder()
	return s
}

// Add inserts a new timepoint at the given offset and returns it in its
// post-sort position. Negative offsets clamp to zero.
func (s *Store) Add(timeUS int64, remark string) Timepoint {
	if timeUS < 0 {
		timeUS = 0
	}
	tp := Timepoint{
		Time:      timeUS,
		Formatted: FormatTime(timeUS),
		Remark:    remark,
	}
	s.points = append(s.points, tp)
	s.reorder()
	for _, p := range s.points {
		if p.Time == timeUS && p.Remark == remark {
			tp = p
		}
	}
	return tp
}

// Remove deletes the timepoint at the given display index and returns it.
func (s *Store) Remove(index int) (Timepoint, error) {
	if index < 0 || index >= len(s.points) {
		return Timepoint{}, status.Wrap(status.ErrNothingSelected, "store", "remove", fmt.Sprintf("index %d", index), nil)
	}
	removed := s.points[index]
	s.points = append(s.points[:index], s.points[index+1:]...)
	s.reorder()
	return removed, nil
}

// UpdateRemark replaces the remark of the timepoint at the given display
// index. Ordering and labels are unaffected.
func (s *Store) UpdateRemark(index int, remark string) error {
	if index < 0 || index >= len(s.points) {
		return status.Wrap(status.ErrNothingSelected, "store", "update remark", fmt.Sprintf("index %d", index), nil)
	}
	s.points[index].Remark = remark
	return nil
}

// At returns the timepoint at the given display index.
func (s *Store) At(index int) (Timepoint, error) {
	if index < 0 || index >= len(s.points) {
		return Timepoint{}, status.Wrap(status.ErrNothingSelected, "store", "select", fmt.Sprintf("index %d", index), nil)
	}
	return s.points[index], nil
}

// Len returns the number of timepoints.
func (s *Store) Len() int {
	return len(s.points)
}

// Points returns a copy of the collection in display order.
func (s *Store) Points() []Timepoint {
	out := make([]Timepoint, len(s.points))
	copy(out, s.points)
	return out
}

// reorder restores the store invariant after a structural change: stable
// sort ascending by time, then relabel every entry with its 1-based
// position. Callers never observe a partially relabeled collection.
func (s *Store) reorder() {
	sort.SliceStable(s.points, func(i, j int) bool {
		return s.points[i].Time < s.points[j].Time
	})
	for i := range s.points {
		s.points[i].Label = FormatLabel(i + 1)
	}
}

// FormatLabel renders a 1-based position as the canonical timepoint label.
func FormatLabel(position int) string {
	return fmt.Sprintf("Point%04d", position)
}

// FormatTime renders microseconds as HH:MM:SS.mmm.
func FormatTime(timeUS int64) string {
	if timeUS < 0 {
		timeUS = 0
	}
	totalMillis := timeUS / 1000
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	seconds := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// ParseIndex converts a 1-based display index string (as shown by the list
// view) into the 0-based store index.
func ParseIndex(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, status.Wrap(status.ErrNothingSelected, "store", "select", fmt.Sprintf("invalid index %q", value), nil)
	}
	return n - 1, nil
}
