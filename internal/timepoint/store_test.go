package timepoint

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"timemark/internal/status"
)

func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	points := s.Points()
	for i, p := range points {
		if i > 0 && points[i-1].Time > p.Time {
			t.Fatalf("store not sorted at %d: %d > %d", i, points[i-1].Time, p.Time)
		}
		want := fmt.Sprintf("Point%04d", i+1)
		if p.Label != want {
			t.Fatalf("label at %d: got %q want %q", i, p.Label, want)
		}
	}
}

func TestAddKeepsSortedContiguousLabels(t *testing.T) {
	s := NewStore()
	for _, us := range []int64{30_000_000, 10_000_000, 20_000_000} {
		s.Add(us, "")
		checkInvariant(t, s)
	}
	points := s.Points()
	if points[0].Time != 10_000_000 || points[2].Time != 30_000_000 {
		t.Fatalf("unexpected order: %+v", points)
	}
}

func TestAddComputesFormattedOnce(t *testing.T) {
	s := NewStore()
	tp := s.Add(3_723_456_000, "kickoff")
	if tp.Formatted != "01:02:03.456" {
		t.Fatalf("unexpected formatted time: %q", tp.Formatted)
	}
	if tp.Label != "Point0001" {
		t.Fatalf("unexpected label: %q", tp.Label)
	}
	// Inserting earlier shifts the label but not the formatted time.
	s.Add(1_000_000, "")
	moved, err := s.At(1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if moved.Label != "Point0002" || moved.Formatted != "01:02:03.456" {
		t.Fatalf("unexpected shifted point: %+v", moved)
	}
}

func TestRemoveRelabels(t *testing.T) {
	s := NewStore()
	for i := int64(1); i <= 5; i++ {
		s.Add(i*1_000_000, "")
	}
	removed, err := s.Remove(2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Time != 3_000_000 {
		t.Fatalf("removed wrong point: %+v", removed)
	}
	if s.Len() != 4 {
		t.Fatalf("unexpected length %d", s.Len())
	}
	checkInvariant(t, s)
}

func TestRandomAddRemoveHoldsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewStore()
	for i := 0; i < 500; i++ {
		if s.Len() > 0 && rng.Intn(3) == 0 {
			if _, err := s.Remove(rng.Intn(s.Len())); err != nil {
				t.Fatalf("Remove: %v", err)
			}
		} else {
			s.Add(int64(rng.Intn(7_200_000))*1000, "")
		}
		checkInvariant(t, s)
	}
}

func TestOutOfRangeIsNothingSelected(t *testing.T) {
	s := NewStore()
	s.Add(1_000_000, "")

	if _, err := s.Remove(5); !errors.Is(err, status.ErrNothingSelected) {
		t.Fatalf("Remove out of range: %v", err)
	}
	if err := s.UpdateRemark(-1, "x"); !errors.Is(err, status.ErrNothingSelected) {
		t.Fatalf("UpdateRemark out of range: %v", err)
	}
	if _, err := s.At(1); !errors.Is(err, status.ErrNothingSelected) {
		t.Fatalf("At out of range: %v", err)
	}
	// Store unchanged by the failed operations.
	if s.Len() != 1 {
		t.Fatalf("store mutated by no-op: %d", s.Len())
	}
	checkInvariant(t, s)
}

func TestUpdateRemarkKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Add(2_000_000, "two")
	s.Add(1_000_000, "one")
	if err := s.UpdateRemark(0, "edited"); err != nil {
		t.Fatalf("UpdateRemark: %v", err)
	}
	first, _ := s.At(0)
	if first.Remark != "edited" || first.Time != 1_000_000 {
		t.Fatalf("unexpected first point: %+v", first)
	}
	checkInvariant(t, s)
}

func TestNegativeTimeClamps(t *testing.T) {
	s := NewStore()
	tp := s.Add(-500, "early")
	if tp.Time != 0 || tp.Formatted != "00:00:00.000" {
		t.Fatalf("expected clamp to zero: %+v", tp)
	}
}

func TestFromRecordsRestoresInvariant(t *testing.T) {
	records := []Timepoint{
		{Time: 5_000_000, Label: "Point0009", Formatted: "00:00:05.000", Remark: "later"},
		{Time: 1_000_000, Label: "bogus", Formatted: "00:00:01.000", Remark: "earlier"},
	}
	s := FromRecords(records)
	checkInvariant(t, s)
	first, _ := s.At(0)
	if first.Remark != "earlier" || first.Formatted != "00:00:01.000" {
		t.Fatalf("records not preserved: %+v", first)
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		us   int64
		want string
	}{
		{0, "00:00:00.000"},
		{999, "00:00:00.000"},
		{1_000, "00:00:00.001"},
		{10_000_000, "00:00:10.000"},
		{3_600_000_000, "01:00:00.000"},
		{37_230_500_000, "10:20:30.500"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.us); got != tc.want {
			t.Fatalf("FormatTime(%d) = %q, want %q", tc.us, got, tc.want)
		}
	}
}

func TestParseIndex(t *testing.T) {
	if idx, err := ParseIndex("3"); err != nil || idx != 2 {
		t.Fatalf("ParseIndex(3) = %d, %v", idx, err)
	}
	for _, bad := range []string{"0", "-1", "abc", ""} {
		if _, err := ParseIndex(bad); !errors.Is(err, status.ErrNothingSelected) {
			t.Fatalf("ParseIndex(%q) expected nothing-selected, got %v", bad, err)
		}
	}
}
