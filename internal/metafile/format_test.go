package metafile

import (
	"errors"
	"testing"

	"timemark/internal/timepoint"
)

func TestEncodeShape(t *testing.T) {
	points := []timepoint.Timepoint{
		{Time: 10_000_000, Label: "Point0001", Formatted: "00:00:10.000", Remark: `say "hi"`},
	}
	got := string(Encode(points))
	want := "return {\n" +
		"  { time = 10000000, label = \"Point0001\", formatted = \"00:00:10.000\", remark = \"say \\\"hi\\\"\" },\n" +
		"}\n"
	if got != want {
		t.Fatalf("unexpected encoding:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	points := []timepoint.Timepoint{
		{Time: 0, Label: "Point0001", Formatted: "00:00:00.000", Remark: ""},
		{Time: 65_432_000, Label: "Point0002", Formatted: "00:01:05.432", Remark: "goal, wide angle"},
		{Time: 3_600_000_000, Label: "Point0003", Formatted: "01:00:00.000", Remark: "päätös"},
	}
	parsed, err := Parse(Encode(points))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != len(points) {
		t.Fatalf("record count %d, want %d", len(parsed), len(points))
	}
	for i := range points {
		if parsed[i] != points[i] {
			t.Fatalf("record %d mismatch:\ngot:  %+v\nwant: %+v", i, parsed[i], points[i])
		}
	}
}

func TestParseEmptyCollection(t *testing.T) {
	parsed, err := Parse([]byte("return {\n}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected no records, got %d", len(parsed))
	}
}

func TestParseToleratesLooseWhitespace(t *testing.T) {
	input := "return{{time=1,label=\"Point0001\",formatted=\"00:00:00.000\",remark=\"x\"}}"
	parsed, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Time != 1 {
		t.Fatalf("unexpected parse result: %+v", parsed)
	}
}

func TestParseRejectsWrongShape(t *testing.T) {
	cases := []string{
		"",
		"returned { }",
		"return [1, 2]",
		"return { 42 }",
		"return { { time = \"ten\", label = \"a\", formatted = \"b\", remark = \"c\" } }",
		"return { { time = 1, label = \"a\" } }",
		"return { { time = 1, label = \"a\", formatted = \"b\", remark = \"c\", extra = 1 } }",
		"return { { time = 1, label = \"a\", formatted = \"b\", remark = \"c\" } } trailing",
		"return { { time = 1, label = \"unterminated, formatted = \"b\", remark = \"c\" } }",
	}
	for _, input := range cases {
		if _, err := Parse([]byte(input)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q) expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestParseNeverExecutesContent(t *testing.T) {
	// A file shaped like code rather than a record collection is malformed,
	// full stop.
	input := "return os.execute(\"rm -rf /\")"
	if _, err := Parse([]byte(input)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
