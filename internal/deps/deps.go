package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency demoreel relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Blocking reports whether the dependency is required and missing.
func (s Status) Blocking() bool {
	return !s.Optional && !s.Available
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Available binaries carry their resolved absolute path in Command.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, CheckBinary(req))
	}
	return results
}

// CheckBinary evaluates a single requirement.
func CheckBinary(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}

// AnyBlocking reports whether any required dependency is missing.
func AnyBlocking(statuses []Status) bool {
	for _, s := range statuses {
		if s.Blocking() {
			return true
		}
	}
	return false
}
