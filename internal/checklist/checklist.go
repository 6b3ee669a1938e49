// Package checklist holds the operator checklist printed around a recording.
package checklist

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"demoreel/internal/recorder"
)

// Section titles in print order.
const (
	BeforeRecording = "Before recording"
	RecordingPlan   = "Recording plan"
	AfterRecording  = "After recording"
)

// Section is a titled, ordered list of checklist items.
type Section struct {
	Title string
	Items []string
}

// Checklist returns the fixed sections. Every call returns an equal, freshly
// allocated value.
func Checklist() []Section {
	plan := make([]string, 0, 6)
	for _, entry := range recorder.Outline() {
		plan = append(plan, fmt.Sprintf("Segment %d: %s (%d sec)", entry.Number, entry.Title, int(entry.Duration.Seconds())))
	}
	return []Section{
		{
			Title: BeforeRecording,
			Items: []string{
				"GitHub is visible in browser",
				"Terminal is ready",
				"Docker is installed",
			},
		},
		{
			Title: RecordingPlan,
			Items: plan,
		},
		{
			Title: AfterRecording,
			Items: []string{
				"Upload video to YouTube",
				"Set visibility to 'Unlisted'",
				"Copy YouTube URL",
				"Paste URL in Partnr submission form",
				"Submit!",
			},
		},
	}
}

// Select returns the sections with the given titles, in checklist order.
func Select(titles ...string) []Section {
	want := make(map[string]bool, len(titles))
	for _, t := range titles {
		want[t] = true
	}
	var out []Section
	for _, s := range Checklist() {
		if want[s.Title] {
			out = append(out, s)
		}
	}
	return out
}

// Render writes sections as numbered lists under title-cased headings.
func Render(w io.Writer, sections []Section) error {
	caser := cases.Title(language.English)
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(caser.String(s.Title))
		b.WriteString(":\n")
		for n, item := range s.Items {
			fmt.Fprintf(&b, "  %d. %s\n", n+1, item)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
