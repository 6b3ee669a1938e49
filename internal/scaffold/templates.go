package scaffold

import (
	"embed"
	"fmt"
	"path"
)

//go:embed templates
var templateFS embed.FS

// File is one fixed scaffold entry: a slash-separated path relative to the
// scaffold root and the literal text written there.
type File struct {
	Path    string
	Content []byte
}

var directories = []string{
	"database/migrations",
	"database/seeds",
	"backend/src/controllers",
	"backend/src/models",
	"backend/src/routes",
	"backend/src/middleware",
	"backend/src/utils",
	"backend/src/config",
	"frontend/src/pages",
	"frontend/src/components",
	"frontend/src/services",
	"frontend/src/hooks",
	"frontend/public",
	"docs/images",
	"config",
}

// Migrations run in lexical order, so the numeric prefixes matter.
var filePaths = []string{
	"database/migrations/001_create_tenants.sql",
	"database/migrations/002_create_users.sql",
	"database/migrations/003_create_projects.sql",
	"database/migrations/004_create_tasks.sql",
	"database/migrations/005_create_audit_logs.sql",
	"database/seeds/seed_data.sql",
}

// Directories returns the fixed, ordered directory list.
func Directories() []string {
	return append([]string(nil), directories...)
}

// Files returns the fixed, ordered list of SQL files with their contents.
func Files() []File {
	files := make([]File, 0, len(filePaths))
	for _, rel := range filePaths {
		data, err := templateFS.ReadFile(path.Join("templates", rel))
		if err != nil {
			// The list and the embedded tree are maintained together.
			panic(fmt.Sprintf("scaffold: missing embedded template %s: %v", rel, err))
		}
		files = append(files, File{Path: rel, Content: data})
	}
	return files
}
