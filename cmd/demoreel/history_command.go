package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"demoreel/internal/ledger"
	"demoreel/internal/textutil"
)

const historyDetailWidth = 60

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var steps bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scaffold and recording runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			fmt.Fprintln(out, renderRunsTable(runs))

			if !steps {
				return nil
			}
			for _, run := range runs {
				list, err := store.Steps(cmd.Context(), run.ID)
				if err != nil {
					return fmt.Errorf("list steps for %s: %w", run.ID, err)
				}
				if len(list) == 0 {
					continue
				}
				fmt.Fprintf(out, "\n%s %s (%s)\n", run.Kind, shortID(run.ID), run.Status)
				fmt.Fprintln(out, renderStepsTable(list))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&steps, "steps", false, "Include the recorded steps of each run")
	return cmd
}

func renderRunsTable(runs []ledger.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration := "-"
		if d := run.Duration(); d > 0 {
			duration = d.Round(time.Second).String()
		}
		rows = append(rows, []string{
			shortID(run.ID),
			string(run.Kind),
			string(run.Status),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			textutil.Summarize(run.Detail, historyDetailWidth),
		})
	}
	return renderTable(
		[]string{"ID", "Kind", "Status", "Started", "Duration", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func renderStepsTable(steps []ledger.Step) string {
	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		o := step.Outcome
		segment := "-"
		if o.Segment > 0 {
			segment = fmt.Sprintf("%d", o.Segment)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", step.Seq),
			segment,
			o.Name,
			textutil.Ternary(o.OK, "ok", "failed"),
			o.Duration.Round(time.Millisecond).String(),
			textutil.Summarize(o.Detail, historyDetailWidth),
		})
	}
	return renderTable(
		[]string{"#", "Segment", "Step", "Result", "Duration", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
