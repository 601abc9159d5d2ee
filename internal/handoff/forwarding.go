package handoff

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"bindery/internal/logging"
	"bindery/internal/services"
)

// Forwarding runs the server as a supervised child instead of replacing the
// process. Termination signals are forwarded to the child's process group
// and the child's exit code surfaces as an ExitError. Used when
// exec_handoff is disabled and in tests.
type Forwarding struct {
	Logger *slog.Logger
}

func (f *Forwarding) Exec(argv []string, env []string) error {
	if len(argv) == 0 {
		return services.Wrap(services.ErrValidation, "handoff", "run", "server command required", nil)
	}
	logger := f.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if env == nil {
		env = os.Environ()
	}

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Own process group so forwarded signals reach the server and anything
	// it spawns.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "handoff", "run",
			fmt.Sprintf("start %s", argv[0]), err)
	}

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				forwardSignal(cmd, sig)
				logger.Debug("signal forwarded to server", logging.String("signal", sig.String()))
			case <-done:
				return
			}
		}
	}()
	defer func() {
		signal.Stop(signals)
		close(done)
	}()

	err := cmd.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return services.Wrap(services.ErrExternalTool, "handoff", "run", argv[0], err)
}

func forwardSignal(cmd *exec.Cmd, sig os.Signal) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	if pid <= 0 {
		return
	}
	sys, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	if pgid, err := syscall.Getpgid(pid); err == nil && pgid > 0 {
		// Negative PGID targets the full process group.
		_ = syscall.Kill(-pgid, sys)
		return
	}
	_ = cmd.Process.Signal(sig)
}
