package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Requirement defines an external tool the companion relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults returns the tools needed for a full setup on this OS.
func Defaults() []Requirement {
	reqs := []Requirement{
		{Name: "Ollama", Command: "ollama", Description: "local LLM runtime"},
		{Name: "ffmpeg", Command: "ffmpeg", Description: "voice sample conversion"},
		{Name: "ffprobe", Command: "ffprobe", Description: "voice sample analysis"},
	}
	if runtime.GOOS == "darwin" {
		reqs = append(reqs, Requirement{Name: "say", Command: "say", Description: "system speech fallback", Optional: true})
	} else {
		reqs = append(reqs, Requirement{Name: "espeak-ng", Command: "espeak-ng", Description: "system speech fallback", Optional: true})
	}
	return reqs
}

// Check evaluates the provided requirements and reports availability.
// Already-installed tools simply report available, so repeated runs are
// safe.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the non-optional requirements that are not
// available.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
