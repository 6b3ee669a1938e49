package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestWaitForEnterReadsLine(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("\n"))
	cmd.SetContext(context.Background())

	if err := waitForEnter(cmd, "Press ENTER..."); err != nil {
		t.Fatalf("waitForEnter: %v", err)
	}
	if out.String() != "Press ENTER..." {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestWaitForEnterAcceptsClosedInput(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetContext(context.Background())

	if err := waitForEnter(cmd, ""); err != nil {
		t.Fatalf("expected EOF to confirm, got %v", err)
	}
}

func TestWaitForEnterHonoursCancel(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetIn(reader)
	cmd.SetContext(ctx)

	if err := waitForEnter(cmd, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunStatus(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "succeeded"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "failed"},
	}
	for _, tc := range cases {
		if got := string(runStatus(tc.err)); got != tc.want {
			t.Fatalf("runStatus(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
