package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathConflictError reports a target path that exists with the wrong type,
// such as a directory where a migration file belongs.
type PathConflictError struct {
	Path string
	Got  string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("path %s exists as %s, want regular file", e.Path, e.Got)
}

// writeFileAtomic replaces target through a temp file in the same directory
// so readers never see a half-written migration.
func writeFileAtomic(target string, data []byte) error {
	if info, err := os.Lstat(target); err == nil && !info.Mode().IsRegular() {
		got := "non-regular file"
		if info.IsDir() {
			got = "directory"
		}
		return &PathConflictError{Path: target, Got: got}
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, target)
}
