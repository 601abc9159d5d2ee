package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"bindery/internal/config"
)

// Requirement defines an external dependency bindery relies on.
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

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
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

// CheckSystemDeps evaluates the external commands the current config relies
// on. The status command and the boot-time dependency snapshot both use this
// to avoid duplicating the requirements list.
func CheckSystemDeps(cfg *config.Config) []Status {
	requirements := []Requirement{
		{
			Name:        "Processor",
			Command:     cfg.Processor.Binary,
			Description: "Converts an artifact into its data bundle",
		},
	}
	if len(cfg.Server.Command) > 0 {
		requirements = append(requirements, Requirement{
			Name:        "Server",
			Command:     cfg.Server.Command[0],
			Description: "Reader server receiving control after boot",
		})
	} else {
		requirements = append(requirements, Requirement{
			Name:        "Server",
			Description: "Reader server receiving control after boot",
			Optional:    true,
		})
	}
	return CheckBinaries(requirements)
}

// CheckDirectoryAccess verifies that the directory exists and is readable.
func CheckDirectoryAccess(name, path string) Status {
	status := Status{Name: name, Command: path}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing library dir is a valid empty enumeration, flag it as
			// optional so preflight output is informational.
			status.Optional = true
			status.Detail = fmt.Sprintf("%s (does not exist)", path)
			return status
		}
		status.Detail = fmt.Sprintf("%s (stat: %v)", path, err)
		return status
	}
	if !info.IsDir() {
		status.Detail = fmt.Sprintf("%s (not a directory)", path)
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("%s (insufficient permissions: %v)", path, err)
		return status
	}
	status.Available = true
	status.Detail = fmt.Sprintf("%s (readable)", path)
	return status
}
