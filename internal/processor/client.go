package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"bindery/internal/logging"
	"bindery/internal/services"
)

var commandContext = exec.CommandContext

// Client defines processor invocation behaviour. Implementations run the
// external converter for a single artifact and return once it exits.
type Client interface {
	Process(ctx context.Context, artifactPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithArgs sets extra arguments placed before the artifact path.
func WithArgs(args []string) Option {
	return func(c *CLI) {
		c.args = append([]string{}, args...)
	}
}

// WithLogger routes processor output lines to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI wraps the external artifact processor command.
type CLI struct {
	binary string
	args   []string
	logger *slog.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "reader3", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Process launches the processor synchronously for one artifact. The
// invocation is expected to create the artifact's completion marker as a
// side effect of success; Process itself only reports the exit status.
func (c *CLI) Process(ctx context.Context, artifactPath string) error {
	if strings.TrimSpace(artifactPath) == "" {
		return services.Wrap(services.ErrValidation, "processor", "invoke", "artifact path required", nil)
	}

	argv := make([]string, 0, len(c.args)+1)
	argv = append(argv, c.args...)
	argv = append(argv, artifactPath)

	cmd := commandContext(ctx, c.binary, argv...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "processor", "invoke", "stdout pipe", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "processor", "invoke",
			fmt.Sprintf("start %s", c.binary), err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		c.logger.Debug("processor output", logging.String("line", line))
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return services.Wrap(services.ErrExternalTool, "processor", "invoke",
				fmt.Sprintf("%s %s exited with code %d", c.binary, artifactPath, exitErr.ExitCode()), err)
		}
		return services.Wrap(services.ErrExternalTool, "processor", "invoke",
			fmt.Sprintf("%s %s", c.binary, artifactPath), err)
	}
	return nil
}
