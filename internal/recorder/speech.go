package recorder

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"strconv"
	"strings"

	"demoreel/internal/textutil"
)

// Speaker plays narration and blocks until it finishes.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// CommandSpeaker runs a platform text-to-speech binary. The argument style
// is picked from the binary name: "say" (macOS), "powershell"/"pwsh"
// (Windows SAPI), anything else is treated as espeak-compatible.
type CommandSpeaker struct {
	Binary string
	// Rate is words per minute.
	Rate int
}

// Args returns the argument list used to speak text.
func (s CommandSpeaker) Args(text string) []string {
	base := path.Base(strings.ReplaceAll(s.Binary, `\`, "/"))
	name := strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
	rate := strconv.Itoa(s.Rate)
	switch name {
	case "say":
		return []string{"-r", rate, text}
	case "powershell", "pwsh":
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; $s = New-Object System.Speech.Synthesis.SpeechSynthesizer; $s.Rate = %d; $s.Speak('%s')",
			sapiRate(s.Rate), strings.ReplaceAll(text, "'", "''"),
		)
		return []string{"-NoProfile", "-NonInteractive", "-Command", script}
	default:
		return []string{"-s", rate, text}
	}
}

// sapiRate maps words per minute onto SAPI's -10..10 scale, where 0 is
// roughly 180 wpm and each step is about 10 wpm.
func sapiRate(wpm int) int {
	r := (wpm - 180) / 10
	if r < -10 {
		return -10
	}
	if r > 10 {
		return 10
	}
	return r
}

// Say implements Speaker.
func (s CommandSpeaker) Say(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.Binary, s.Args(text)...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("speech: %w: %s", err, textutil.Summarize(string(output), 200))
	}
	return nil
}
