package main

import (
	"github.com/spf13/cobra"

	"demoreel/internal/checklist"
)

func newChecklistCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "checklist",
		Short:       "Print the recording checklist",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return checklist.Render(cmd.OutOrStdout(), checklist.Checklist())
		},
	}
}
