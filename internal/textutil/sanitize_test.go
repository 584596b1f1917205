package textutil

import "testing"

func TestSanitizeComponent(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
	}{
		{"space becomes separator", "test run", "test_run"},
		{"unsafe set replaced", `a\b/c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"runs collapse", "a  \t *? b", "a_b"},
		{"trimmed", "  hello  ", "hello"},
		{"leading unsafe trimmed", "///clip", "clip"},
		{"empty stays empty", "", ""},
		{"all unsafe becomes empty", " / \\ ", ""},
		{"control chars", "a\x00b\nc", "a_b_c"},
		{"non-ascii kept", "café réunion", "café_réunion"},
		{"existing separators collapse", "a__b", "a_b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeComponent(tc.in); got != tc.want {
				t.Fatalf("SanitizeComponent(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"file:///home/user/movie.mp4", "file_home_user_movie.mp4"},
		{"C:\\Videos\\clip (1).mkv", "C_Videos_clip_1_.mkv"},
		{"plain-name.mp4", "plain-name.mp4"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeIdentifier(tc.in); got != tc.want {
			t.Fatalf("SanitizeIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
