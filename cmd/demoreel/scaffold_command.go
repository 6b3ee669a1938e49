package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"demoreel/internal/config"
	"demoreel/internal/ledger"
	"demoreel/internal/scaffold"
)

func newScaffoldCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var verify bool

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Write the SaaS project directory tree and SQL migrations",
		Long: "Create the fixed backend/frontend/database directory tree and write the\n" +
			"tenant, user, project, task, and audit-log migrations plus seed data.\n" +
			"Existing files are overwritten with the built-in templates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := scaffoldRoot(cfg, rootFlag)
			if err != nil {
				return err
			}
			gen := scaffold.New(root, ctx.ensureLogger())
			if verify {
				return runScaffoldVerify(cmd, gen)
			}
			return runScaffoldGenerate(cmd, ctx, gen)
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Project root (defaults to scaffold.root)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Compare the tree with the templates without writing")
	return cmd
}

func scaffoldRoot(cfg *config.Config, flag string) (string, error) {
	root := strings.TrimSpace(flag)
	if root == "" {
		root = cfg.Scaffold.Root
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return "", fmt.Errorf("resolve scaffold root: %w", err)
	}
	return expanded, nil
}

func runScaffoldGenerate(cmd *cobra.Command, ctx *commandContext, gen *scaffold.Generator) error {
	tracker := ctx.beginRun(cmd.Context(), ledger.KindScaffold)

	result, err := gen.Generate(cmd.Context())
	if err != nil {
		err = fmt.Errorf("scaffold %s: %w", gen.Root(), err)
		tracker.finish(cmd.Context(), err, "")
		return err
	}
	for _, path := range result.Files {
		tracker.step(cmd.Context(), ledger.Outcome{Name: "write", OK: true, Detail: path})
	}
	tracker.finish(cmd.Context(), nil, fmt.Sprintf("%d directories, %d files under %s",
		len(result.Directories), len(result.Files), result.Root))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scaffold written to %s\n", result.Root)
	fmt.Fprintf(out, "  Directories: %d\n", len(result.Directories))
	fmt.Fprintf(out, "  SQL files:   %d\n", len(result.Files))
	for _, file := range scaffold.Files() {
		fmt.Fprintf(out, "    %s\n", file.Path)
	}
	return nil
}

func runScaffoldVerify(cmd *cobra.Command, gen *scaffold.Generator) error {
	drifts, err := gen.Verify()
	if err != nil {
		return fmt.Errorf("verify scaffold: %w", err)
	}

	rows := make([][]string, 0, len(drifts))
	for _, d := range drifts {
		kind := "file"
		if d.Dir {
			kind = "dir"
		}
		rows = append(rows, []string{d.Path, kind, string(d.State)})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Path", "Type", "State"}, rows, nil))

	if !scaffold.Clean(drifts) {
		return fmt.Errorf("scaffold under %s differs from the templates; run `demoreel scaffold` to rewrite it", gen.Root())
	}
	fmt.Fprintln(out, "Scaffold matches the templates")
	return nil
}
