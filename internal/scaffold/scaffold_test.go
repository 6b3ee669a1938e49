package scaffold_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"demoreel/internal/logging"
	"demoreel/internal/scaffold"
)

func TestGenerateCreatesTree(t *testing.T) {
	root := t.TempDir()
	gen := scaffold.New(root, logging.NewNop())

	result, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Directories) != 15 {
		t.Fatalf("expected 15 directories, got %d", len(result.Directories))
	}
	if len(result.Files) != 6 {
		t.Fatalf("expected 6 files, got %d", len(result.Files))
	}

	for _, rel := range scaffold.Directories() {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("stat %s: %v", rel, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", rel)
		}
	}
	for _, file := range scaffold.Files() {
		got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file.Path)))
		if err != nil {
			t.Fatalf("read %s: %v", file.Path, err)
		}
		if !bytes.Equal(got, file.Content) {
			t.Fatalf("%s content mismatch", file.Path)
		}
	}
}

func TestFileContents(t *testing.T) {
	files := scaffold.Files()
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := []string{
		"database/migrations/001_create_tenants.sql",
		"database/migrations/002_create_users.sql",
		"database/migrations/003_create_projects.sql",
		"database/migrations/004_create_tasks.sql",
		"database/migrations/005_create_audit_logs.sql",
		"database/seeds/seed_data.sql",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("file order mismatch (-want +got):\n%s", diff)
	}

	checks := map[string][]string{
		"database/migrations/001_create_tenants.sql":    {"CREATE TABLE IF NOT EXISTS tenants", "subscription_plan VARCHAR(50) DEFAULT 'free'"},
		"database/migrations/002_create_users.sql":      {"CREATE TABLE IF NOT EXISTS users", "UNIQUE(tenant_id, email)"},
		"database/migrations/003_create_projects.sql":   {"CREATE TABLE IF NOT EXISTS projects", "REFERENCES tenants(id) ON DELETE CASCADE"},
		"database/migrations/004_create_tasks.sql":      {"CREATE TABLE IF NOT EXISTS tasks", "priority VARCHAR(50) DEFAULT 'medium'"},
		"database/migrations/005_create_audit_logs.sql": {"CREATE TABLE IF NOT EXISTS audit_logs", "ON DELETE SET NULL"},
		"database/seeds/seed_data.sql":                  {"INSERT INTO tenants", "Demo Company"},
	}
	for _, f := range files {
		for _, want := range checks[f.Path] {
			if !strings.Contains(string(f.Content), want) {
				t.Errorf("%s: expected to contain %q", f.Path, want)
			}
		}
	}
}

func TestGenerateOverwritesModifiedFiles(t *testing.T) {
	root := t.TempDir()
	gen := scaffold.New(root, logging.NewNop())
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	target := filepath.Join(root, "database", "migrations", "002_create_users.sql")
	if err := os.WriteFile(target, []byte("-- local edit\n"), 0o644); err != nil {
		t.Fatalf("modify file: %v", err)
	}
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(got), "local edit") {
		t.Fatal("expected template content to replace local edit")
	}
	drifts, err := gen.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !scaffold.Clean(drifts) {
		t.Fatalf("expected clean tree after regenerate, got %+v", drifts)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestGenerateFailsWhenRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(root, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	gen := scaffold.New(root, logging.NewNop())
	if _, err := gen.Generate(context.Background()); err == nil {
		t.Fatal("expected error when root is a regular file")
	}
}

func TestGenerateRejectsDirectoryAtFilePath(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "database", "seeds", "seed_data.sql")
	if err := os.MkdirAll(blocker, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	gen := scaffold.New(root, logging.NewNop())
	_, err := gen.Generate(context.Background())
	var conflict *scaffold.PathConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected PathConflictError, got %v", err)
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := scaffold.New(t.TempDir(), logging.NewNop())
	if _, err := gen.Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVerifyReportsDrift(t *testing.T) {
	root := t.TempDir()
	gen := scaffold.New(root, logging.NewNop())

	drifts, err := gen.Verify()
	if err != nil {
		t.Fatalf("Verify on empty root: %v", err)
	}
	for _, d := range drifts {
		if d.State != scaffold.DriftMissing {
			t.Fatalf("expected every entry missing, got %+v", d)
		}
	}

	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := os.Remove(filepath.Join(root, "database", "migrations", "005_create_audit_logs.sql")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "database", "seeds", "seed_data.sql"), []byte("changed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	drifts, err = gen.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	states := map[string]scaffold.DriftState{}
	for _, d := range drifts {
		if d.State != scaffold.DriftClean {
			states[d.Path] = d.State
		}
	}
	want := map[string]scaffold.DriftState{
		"database/migrations/005_create_audit_logs.sql": scaffold.DriftMissing,
		"database/seeds/seed_data.sql":                  scaffold.DriftModified,
	}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Fatalf("drift mismatch (-want +got):\n%s", diff)
	}
}
