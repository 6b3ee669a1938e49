package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"demoreel/internal/logging"
)

// Result lists the absolute paths touched by a successful Generate.
type Result struct {
	Root        string
	Directories []string
	Files       []string
}

// DriftState classifies an on-disk scaffold entry against its template.
type DriftState string

const (
	DriftClean    DriftState = "clean"
	DriftMissing  DriftState = "missing"
	DriftModified DriftState = "modified"
)

// Drift reports the state of one scaffold entry under the root.
type Drift struct {
	Path  string
	Dir   bool
	State DriftState
}

// Generator writes the fixed scaffold under a root directory.
type Generator struct {
	root   string
	logger *slog.Logger
}

// New creates a generator rooted at root.
func New(root string, logger *slog.Logger) *Generator {
	return &Generator{
		root:   root,
		logger: logging.NewComponentLogger(logger, "scaffold"),
	}
}

// Root returns the generator's target directory.
func (g *Generator) Root() string {
	return g.root
}

// Generate creates every scaffold directory and overwrites every scaffold
// file with its template. The first filesystem error aborts the run; the
// returned Result is only meaningful when err is nil.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	result := Result{Root: g.root}

	for _, rel := range directories {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		dir := filepath.Join(g.root, filepath.FromSlash(rel))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create directory %s: %w", rel, err)
		}
		g.logger.Debug("directory ready", logging.String("path", dir))
		result.Directories = append(result.Directories, dir)
	}

	for _, file := range Files() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		target := filepath.Join(g.root, filepath.FromSlash(file.Path))
		if err := writeFileAtomic(target, file.Content); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", file.Path, err)
		}
		g.logger.Debug("file written",
			logging.String("path", target),
			logging.Int("bytes", len(file.Content)),
		)
		result.Files = append(result.Files, target)
	}

	g.logger.Info("scaffold generated",
		logging.String("root", g.root),
		logging.Int("directories", len(result.Directories)),
		logging.Int("files", len(result.Files)),
	)
	return result, nil
}

// Verify compares the tree under the root with the templates without
// writing anything.
func (g *Generator) Verify() ([]Drift, error) {
	drifts := make([]Drift, 0, len(directories)+len(filePaths))

	for _, rel := range directories {
		info, err := os.Stat(filepath.Join(g.root, filepath.FromSlash(rel)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			drifts = append(drifts, Drift{Path: rel, Dir: true, State: DriftMissing})
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", rel, err)
		case !info.IsDir():
			drifts = append(drifts, Drift{Path: rel, Dir: true, State: DriftModified})
		default:
			drifts = append(drifts, Drift{Path: rel, Dir: true, State: DriftClean})
		}
	}

	for _, file := range Files() {
		data, err := os.ReadFile(filepath.Join(g.root, filepath.FromSlash(file.Path)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			drifts = append(drifts, Drift{Path: file.Path, State: DriftMissing})
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", file.Path, err)
		case !bytes.Equal(data, file.Content):
			drifts = append(drifts, Drift{Path: file.Path, State: DriftModified})
		default:
			drifts = append(drifts, Drift{Path: file.Path, State: DriftClean})
		}
	}
	return drifts, nil
}

// Clean reports whether every drift entry matches its template.
func Clean(drifts []Drift) bool {
	for _, d := range drifts {
		if d.State != DriftClean {
			return false
		}
	}
	return true
}
