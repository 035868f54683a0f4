// Package handlers implements the business logic for CLI commands.
//
// Handlers are called by the command definitions in the commands package.
// Every handler writes exactly one document to stdout: the result of the
// invocation, or {"failed": true, "msg": ...} when it failed.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/metrics"
	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
	"github.com/imamik/ranchsync/internal/resources"
)

// Options are the global flags shared by every command.
type Options struct {
	Host        string
	User        string
	Password    string
	Insecure    bool
	CACert      string
	Timeout     time.Duration
	Output      string
	Verbose     bool
	Pushgateway string

	// InsecureSet is true when --insecure was given, so that an explicit
	// --insecure=false overrides RANCHER_INSECURE.
	InsecureSet bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// stdout receives the result document.
	stdout io.Writer = os.Stdout

	// stderr receives log output.
	stderr io.Writer = os.Stderr

	// loadConnection reads connection settings from the environment.
	loadConnection = config.LoadConnection

	// newRancherClient creates the Rancher API client.
	newRancherClient = func(opts rancher.Options) (resources.ActionAPI, error) {
		return rancher.NewClient(opts)
	}

	// isInteractive reports whether the user can be prompted.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// promptPassword asks for the Rancher password.
	promptPassword = func(ctx context.Context, user string) (string, error) {
		var password string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Rancher password for %s", user)).
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		).RunWithContext(ctx)
		return password, err
	}

	// pushMetrics sends collected metrics to a Pushgateway.
	pushMetrics = metrics.Push
)

// ReportedError is returned once the failure document has been written.
// main only sets the exit code for it.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already written to stdout.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// newLogger builds the logr sink on stderr. Verbose switches to development
// mode, which also enables debug (V(1)) messages.
func newLogger(verbose bool) logr.Logger {
	return zap.New(zap.WriteTo(stderr), zap.UseDevMode(verbose))
}

// resolveConnection merges the environment with flags; flags win.
func resolveConnection(ctx context.Context, opts *Options) (*config.Connection, error) {
	conn := loadConnection()
	if opts.Host != "" {
		conn.Host = opts.Host
	}
	if opts.User != "" {
		conn.User = opts.User
	}
	if opts.Password != "" {
		conn.Password = opts.Password
	}
	if opts.InsecureSet || opts.Insecure {
		conn.Insecure = opts.Insecure
	}
	if opts.CACert != "" {
		conn.CACertFile = opts.CACert
	}
	if opts.Timeout != 0 {
		conn.Timeout = opts.Timeout
	}

	if conn.Password == "" && conn.Host != "" && conn.User != "" && isInteractive() {
		password, err := promptPassword(ctx, conn.User)
		if err != nil {
			return nil, fmt.Errorf("password prompt canceled: %w", err)
		}
		conn.Password = password
	}

	if err := conn.Validate(); err != nil {
		return nil, reconcile.ConfigurationError("", "", "invalid connection: %v", err)
	}
	return conn, nil
}

// run executes one invocation: it sets up logging and the client, calls fn,
// writes the result or failure and pushes metrics.
func run(ctx context.Context, opts *Options, title string, fn func(ctx context.Context, api resources.ActionAPI) (*reconcile.Result, error)) error {
	ctx, log := withLogger(ctx, opts)

	result, err := invoke(ctx, opts, fn)
	push(ctx, opts)

	if err != nil {
		if h := failureHint(err); h != "" {
			log.Info(h, "title", title)
		}
		log.V(1).Info("invocation failed", "title", title, "error", err.Error())
		return report(opts, err)
	}
	return writeResult(stdout, opts.Output, title, result)
}

// fail reports an error found before any request was prepared.
func fail(ctx context.Context, opts *Options, err error) error {
	ctx, _ = withLogger(ctx, opts)
	push(ctx, opts)
	return report(opts, err)
}

func withLogger(ctx context.Context, opts *Options) (context.Context, logr.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger(opts.Verbose)
	return logr.NewContext(ctx, log), log
}

func push(ctx context.Context, opts *Options) {
	if err := pushMetrics(ctx, opts.Pushgateway, metrics.DefaultJob); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "metrics push failed")
	}
}

// failureHint names the likely cause of a rejected request. The failure
// document itself keeps the server's body unchanged.
func failureHint(err error) string {
	switch {
	case rancher.IsUnauthorized(err):
		return "rancher rejected the credentials, check --user and --password"
	case rancher.IsNotFound(err):
		return "rancher answered not found, check --host"
	case rancher.IsConflict(err):
		return "rancher reported a conflict, the record may have been created concurrently"
	}
	return ""
}

func report(opts *Options, err error) error {
	if writeErr := writeFailure(stdout, opts.Output, err); writeErr != nil {
		return errors.Join(err, writeErr)
	}
	return &ReportedError{Err: err}
}

func invoke(ctx context.Context, opts *Options, fn func(ctx context.Context, api resources.ActionAPI) (*reconcile.Result, error)) (*reconcile.Result, error) {
	if err := validateOutput(opts.Output); err != nil {
		return nil, err
	}

	conn, err := resolveConnection(ctx, opts)
	if err != nil {
		return nil, err
	}

	api, err := newRancherClient(conn.Options())
	if err != nil {
		return nil, err
	}
	return fn(ctx, api)
}
