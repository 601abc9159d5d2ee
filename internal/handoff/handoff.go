package handoff

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"bindery/internal/services"
)

// Handoff transfers control to the server command line once orchestration
// has finished. Implementations either replace the current process or
// supervise a child while preserving signal and exit-code semantics.
type Handoff interface {
	Exec(argv []string, env []string) error
}

// ExitError reports the server's exit code from a non-replacing handoff so
// the caller can propagate it as the process exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("server exited with code %d", e.Code)
}

// Execve hands control to the server via process replacement. On success the
// call never returns: the server takes over the process identity, receives
// signals directly, and its exit code becomes the container's.
type Execve struct{}

func (Execve) Exec(argv []string, env []string) error {
	if len(argv) == 0 {
		return services.Wrap(services.ErrValidation, "handoff", "exec", "server command required", nil)
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return services.Wrap(services.ErrNotFound, "handoff", "exec",
			fmt.Sprintf("server binary %q", argv[0]), err)
	}
	if env == nil {
		env = os.Environ()
	}
	if err := unix.Exec(path, argv, env); err != nil {
		return services.Wrap(services.ErrExternalTool, "handoff", "exec", path, err)
	}
	return nil
}
