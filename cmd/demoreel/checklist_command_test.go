package main

import (
	"strings"
	"testing"
)

func TestChecklistCommandSkipsConfig(t *testing.T) {
	setupCLITestEnv(t)
	bogus := t.TempDir() + "/missing/dir/config.toml"

	out, _, err := runCLI(t, []string{"checklist"}, bogus)
	if err != nil {
		t.Fatalf("checklist: %v", err)
	}
	requireContains(t, out, "Before Recording:")
	requireContains(t, out, "Recording Plan:")
	requireContains(t, out, "After Recording:")
	requireContains(t, out, "  1. GitHub is visible in browser")
	requireContains(t, out, "Segment 1: Introduction (30 sec)")
	requireContains(t, out, "  5. Submit!")

	before := strings.Index(out, "Before Recording:")
	after := strings.Index(out, "After Recording:")
	if before > after {
		t.Fatalf("sections out of order:\n%s", out)
	}
}
