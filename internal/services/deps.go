package services

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/hcollard/ytmirror/internal/shared"
)

// Requirement defines an external binary the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// DepStatus reports the availability of one requirement.
type DepStatus struct {
	Name      string
	Command   string
	Optional  bool
	Available bool
	Detail    string
}

// Requirements returns the preflight set for the configured binaries.
func Requirements(fetcher, ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{Name: "fetcher", Command: fetcher, Description: "remote listing, fetching and subtitle recovery"},
		{Name: "ffmpeg", Command: ffmpeg, Description: "container metadata rewriting"},
		{Name: "ffprobe", Command: ffprobe, Description: "stream probing"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []DepStatus {
	results := make([]DepStatus, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := DepStatus{Name: req.Name, Command: cmd, Optional: req.Optional}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// VerifyBinaries is the preflight gate: every required binary must resolve
// before any collection work starts. A missing tool is fatal to the run.
func VerifyBinaries(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if !status.Available && !status.Optional {
			return fmt.Errorf("%w: %s (%s)", shared.ErrMissingTool, status.Name, status.Detail)
		}
	}
	return nil
}
