package textutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineTailKeepsLastLines(t *testing.T) {
	tail := NewLineTail(2)
	fmt.Fprint(tail, "first\nsecond\r\n\nthird\npartial")

	want := []string{"third", "partial"}
	if diff := cmp.Diff(want, tail.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := tail.String(); got != "third; partial" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestLineTailMinimumLimit(t *testing.T) {
	tail := NewLineTail(0)
	fmt.Fprint(tail, "a\nb\n")
	if diff := cmp.Diff([]string{"b"}, tail.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "  {\"status\":\n  \"ok\"}  ", max: 0, want: `{"status": "ok"}`},
		{in: "short", max: 10, want: "short"},
		{in: "abcdefghij", max: 5, want: "abcd…"},
		{in: "abc", max: 1, want: "…"},
	}
	for _, tc := range tests {
		if got := Summarize(tc.in, tc.max); got != tc.want {
			t.Errorf("Summarize(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "yes", "no") != "yes" || Ternary(false, 1, 2) != 2 {
		t.Fatal("Ternary returned the wrong branch")
	}
}
