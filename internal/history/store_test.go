package history_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"timemark/internal/history"
)

func mustOpen(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordRunAssignsID(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	rec, err := store.RecordRun(ctx, history.Record{
		MediaPath:  "/videos/match.mp4",
		Identifier: "match.mp4",
		Label:      "Point0001",
		TimeMicros: 12_500_000,
		Formatted:  "00:00:12.500",
		Mode:       "frames",
		Command:    `ffmpeg -ss 10.500 -i /videos/match.mp4 ...`,
		OutputPath: "/videos/match_extracted_frames/Point0001",
		LogPath:    "/data/run/extract.log",
	})
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated ID")
	}
	if rec.StartedAt.IsZero() {
		t.Fatal("expected StartedAt to be set")
	}

	records, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != rec.ID || got.Label != "Point0001" || got.TimeMicros != 12_500_000 || got.Mode != "frames" {
		t.Fatalf("unexpected record: %#v", got)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.RecordRun(ctx, history.Record{
			MediaPath: "/videos/match.mp4",
			Label:     fmt.Sprintf("Point%04d", i+1),
			Mode:      "lossless",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Label != "Point0003" || records[1].Label != "Point0002" {
		t.Fatalf("unexpected order: %q then %q", records[0].Label, records[1].Label)
	}
}

func TestRecentForMediaFilters(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	for _, media := range []string{"/videos/a.mp4", "/videos/b.mp4", "/videos/a.mp4"} {
		if _, err := store.RecordRun(ctx, history.Record{MediaPath: media, Mode: "encoded"}); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	records, err := store.RecentForMedia(ctx, "/videos/a.mp4", 0)
	if err != nil {
		t.Fatalf("RecentForMedia failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for media, got %d", len(records))
	}
	for _, rec := range records {
		if rec.MediaPath != "/videos/a.mp4" {
			t.Fatalf("wrong media in result: %q", rec.MediaPath)
		}
	}
}

func TestClearRemovesRuns(t *testing.T) {
	store := mustOpen(t)
	ctx := context.Background()

	if _, err := store.RecordRun(ctx, history.Record{MediaPath: "/videos/a.mp4", Mode: "frames"}); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	records, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty journal, got %d records", len(records))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if _, err := store.RecordRun(context.Background(), history.Record{MediaPath: "/videos/a.mp4", Mode: "frames"}); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer reopened.Close()
	records, err := reopened.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected surviving record, got %d", len(records))
	}
}
