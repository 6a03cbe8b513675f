package diag

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/containerd/log"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/version"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Command is the body of one diagnostic program. Its human-readable report
// goes to out; failures are returned, not printed.
type Command func(ctx context.Context, cfg *config.Config, out io.Writer) error

// Main runs cmd against the global configuration and exits the process.
func Main(name string, cmd Command) {
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(ExitFailure)
	}
	os.Exit(Run(context.Background(), name, cfg, cmd, os.Stdout, os.Stderr))
}

// Run executes cmd and returns the process exit code. A failure is written
// to stderr as a single "<op>: <error>" line.
func Run(ctx context.Context, name string, cfg *config.Config, cmd Command, stdout, stderr io.Writer) int {
	ConfigureLogging(cfg.Debug, stderr)

	ctx = log.WithLogger(ctx, log.G(ctx).WithField("cmd", name))
	log.G(ctx).WithField("version", version.Info()).Debug("starting")

	if err := cmd(ctx, cfg, stdout); err != nil {
		log.G(ctx).WithError(err).Debug("exiting with error")
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	return ExitSuccess
}

// ConfigureLogging sets the global log level and sends log output to w.
func ConfigureLogging(debug bool, w io.Writer) {
	level := "info"
	if debug {
		level = "debug"
	}
	if err := log.SetLevel(level); err != nil {
		fmt.Fprintf(w, "failed to set log level %q: %v\n", level, err)
	}
	log.L.Logger.SetOutput(w)
}
