package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// waitForEnter prints message and blocks until the operator presses ENTER
// or the command is interrupted. A closed stdin counts as confirmation so
// piped invocations still run.
func waitForEnter(cmd *cobra.Command, message string) error {
	fmt.Fprint(cmd.OutOrStdout(), message)

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(cmd.OutOrStdout())
		return ctx.Err()
	}
}
