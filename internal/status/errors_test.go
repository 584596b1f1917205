package status

import (
	"errors"
	"io/fs"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrStorage, "metafile", "save", "both paths failed", fs.ErrPermission)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage marker: %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected wrapped cause: %v", err)
	}
	want := "storage failure: metafile: save: both paths failed: permission denied"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaultsToStorage(t *testing.T) {
	err := Wrap(nil, "metafile", "save", "", nil)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected default storage marker: %v", err)
	}
}

func TestIsUserStatus(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{Wrap(ErrNothingSelected, "store", "remove", "index 9", nil), true},
		{Wrap(ErrNoMedia, "player", "mark", "", nil), true},
		{Wrap(ErrToolMissing, "extract", "frames", "", nil), false},
		{errors.New("plain"), false},
	}
	for _, tc := range cases {
		if got := IsUserStatus(tc.err); got != tc.want {
			t.Fatalf("IsUserStatus(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
