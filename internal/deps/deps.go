package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external binary and whether scribe can run without it.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the lookup outcome for one Requirement. Command holds the
// resolved path when Available.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// CheckBinaries looks up every requirement on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	statuses := make([]Status, len(requirements))
	for i, req := range requirements {
		statuses[i] = lookup(req)
	}
	return statuses
}

func lookup(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	switch resolved, err := exec.LookPath(status.Command); {
	case status.Command == "":
		status.Detail = "command not configured"
	case err != nil:
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
	default:
		status.Command = resolved
		status.Available = true
	}
	return status
}

// MissingRequired lists the names of unavailable, non-optional dependencies.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s.Name)
		}
	}
	return missing
}
