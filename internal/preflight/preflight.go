package preflight

import (
	"fmt"

	"scribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
	// Warn marks a passing check that found a missing optional dependency.
	Warn bool `json:"warn,omitempty"`
}

// RunAll executes the directory and dependency checks for the given config.
// Optional dependencies that are missing still pass with a note.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
			if status.Optional {
				result.Passed = true
				result.Warn = true
				result.Detail = fmt.Sprintf("%s (optional)", status.Detail)
			}
		}
		results = append(results, result)
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
