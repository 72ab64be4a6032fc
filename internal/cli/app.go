// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides command-line interface implementations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	cliAdapter "github.com/janderssonse/skid/internal/adapters/cli"
	"github.com/janderssonse/skid/internal/adapters/platform"
	"github.com/janderssonse/skid/internal/cli/handlers"
	"github.com/janderssonse/skid/internal/config"
	"github.com/janderssonse/skid/internal/console"
	"github.com/janderssonse/skid/internal/domain"
	"github.com/janderssonse/skid/internal/groups"
	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev" //nolint:gochecknoglobals

// CLI wires the group resolver to the command line.
type CLI struct {
	app *cli.Command

	verbose      bool
	json         bool
	quiet        bool
	plain        bool
	format       string
	color        string // "auto", "always", "never"
	configPath   string
	groupFile    string
	maxRecords   int
	resolverName string
	lock         bool
	lockTimeout  time.Duration

	stdout   io.Writer
	stderr   io.Writer
	console  *console.OutputState
	identity domain.IdentityResolver
}

// Option customises a CLI.
type Option func(*CLI)

// WithWriters redirects standard output and standard error.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(app *CLI) {
		app.stdout = stdout
		app.stderr = stderr
	}
}

// WithIdentityResolver replaces the identity resolver selected by configuration.
func WithIdentityResolver(identity domain.IdentityResolver) Option {
	return func(app *CLI) {
		app.identity = identity
	}
}

// NewCLI creates the skid command tree.
func NewCLI(opts ...Option) *CLI {
	app := &CLI{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	app.console = &console.OutputState{Out: app.stdout, Err: app.stderr}

	app.app = &cli.Command{
		Name:        "skid",
		Usage:       "List the group IDs a user is compatible with",
		Version:     Version,
		HideVersion: true,
		Suggest:     true,
		Description: `Scans the group database for every group listing a user as a member
and reports those GIDs followed by the user's primary GID.

EXAMPLES:
  skid gids                  GIDs of the current user
  skid gids --terminated     Same, followed by two zero sentinels
  skid groups hark           Table of hark's groups
  skid check 134 hark        Exit 0 if hark may use GID 134
  skid match hark 'docker:x:134:hark'

CONFIGURATION:
  $XDG_CONFIG_HOME/skid/config.toml, or the file named by SKID_CONFIG.
  Command line flags override the file.`,
		Writer:    app.stdout,
		ErrWriter: app.stderr,
		Flags:     app.globalFlags(),
		Action:    app.defaultAction,
		Commands: []*cli.Command{
			app.createGIDsCommand(),
			app.createGroupsCommand(),
			app.createCheckCommand(),
			app.createMatchCommand(),
			app.createDocsCommand(),
			app.createVersionCommand(),
		},
		OnUsageError: usageError,
	}

	return app
}

func (app *CLI) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "show progress messages to stderr",
			Aliases:     []string{"v"},
			Destination: &app.verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output structured JSON results",
			Aliases:     []string{"j"},
			Destination: &app.json,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Usage:       "suppress non-essential output",
			Aliases:     []string{"q"},
			Destination: &app.quiet,
		},
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "output plain text without formatting for scripts",
			Destination: &app.plain,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "output format: text, json, plain",
			Sources:     cli.EnvVars("SKID_FORMAT"),
			Destination: &app.format,
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "bold headers: auto (terminal only), always, never",
			Value:       "auto",
			Destination: &app.color,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "configuration file",
			Sources:     cli.EnvVars(config.EnvConfig),
			Destination: &app.configPath,
		},
		&cli.StringFlag{
			Name:        "group-file",
			Usage:       "group database to scan",
			Sources:     cli.EnvVars("SKID_GROUP_FILE"),
			Destination: &app.groupFile,
		},
		&cli.IntFlag{
			Name:        "max-records",
			Usage:       "maximum number of supplementary groups",
			Destination: &app.maxRecords,
		},
		&cli.StringFlag{
			Name:        "resolver",
			Usage:       "primary group lookup: shell (id -g) or native",
			Destination: &app.resolverName,
		},
		&cli.BoolFlag{
			Name:        "lock",
			Usage:       "hold a shared lock on the group file while reading it",
			Destination: &app.lock,
		},
		&cli.DurationFlag{
			Name:        "lock-timeout",
			Usage:       "how long to wait for the group file lock",
			Value:       platform.DefaultLockTimeout,
			Destination: &app.lockTimeout,
		},
	}
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// Execute runs the application, reports any error and returns the process exit code.
func (app *CLI) Execute(ctx context.Context, args []string) int {
	err := app.Run(ctx, args)
	if err == nil {
		return domain.ExitSuccess
	}

	exitErr := &domain.ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = domain.NewExitError(domain.ExitGeneralError, "Unexpected error: "+err.Error(), err)
	}

	if exitErr.Message != "" {
		app.console.ErrorResult(errors.New(exitErr.Message), exitErr.Code)
	}

	return exitErr.Code
}

// initOutput validates the output flags and configures the console.
func (app *CLI) initOutput() error {
	format, err := cliAdapter.ParseOutputFormat(app.format)
	if err != nil {
		return domain.NewExitError(domain.ExitUsageError, "invalid --format value: must be text, json, or plain", err)
	}

	switch format {
	case cliAdapter.JSONFormat:
		app.json = true
	case cliAdapter.PlainFormat:
		app.plain = true
	}

	if app.json && app.plain {
		return domain.NewExitError(domain.ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	switch app.color {
	case "auto":
		app.console.ForceColor = false
	case "never":
		app.console.ForceColor = false
		_ = os.Setenv("NO_COLOR", "1")
	case "always":
		app.console.ForceColor = true
	default:
		return domain.NewExitError(domain.ExitUsageError, "invalid --color value: must be auto, always, or never", nil)
	}

	app.console.SetMode(app.verbose, app.json, app.plain, app.quiet)

	return nil
}

// loadConfig reads the configuration file and applies flag overrides.
func (app *CLI) loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return cfg, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	if cmd.IsSet("group-file") {
		cfg.GroupFile = app.groupFile
	}

	if cmd.IsSet("max-records") {
		cfg.MaxRecords = app.maxRecords
	}

	if cmd.IsSet("resolver") {
		cfg.Resolver = app.resolverName
	}

	if cmd.IsSet("lock") {
		cfg.LockGroupFile = app.lock
	}

	if err := config.Validate(&cfg); err != nil {
		return cfg, domain.NewExitError(domain.ExitUsageError, err.Error(), err)
	}

	return cfg, nil
}

// newHandler assembles the resolver stack for one command invocation.
func (app *CLI) newHandler(cmd *cli.Command) (*handlers.GroupHandler, error) {
	if err := app.initOutput(); err != nil {
		return nil, err
	}

	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	identity, err := app.identityResolver(cfg.Resolver)
	if err != nil {
		return nil, err
	}

	files := platform.NewGroupFileReader(cfg.LockGroupFile, app.lockTimeout, app.console)
	resolver := groups.NewResolver(files, identity, groups.Options{
		GroupFile:  cfg.GroupFile,
		MaxRecords: cfg.MaxRecords,
		Logger:     app.console,
	})

	app.console.Progressf("Using group file %s (max %d records)", cfg.GroupFile, cfg.MaxRecords)

	return handlers.NewGroupHandler(app.baseHandler(), resolver, cfg.Sentinels), nil
}

// newMatchHandler builds a handler for commands that never read the group file.
func (app *CLI) newMatchHandler() *handlers.GroupHandler {
	return handlers.NewGroupHandler(app.baseHandler(), nil, domain.DefaultSentinels)
}

func (app *CLI) baseHandler() *handlers.BaseHandler {
	output := cliAdapter.NewOutputAdapterWithWriters(app.stdout, app.stderr, app.outputFormat(), app.quiet)

	return handlers.NewBaseHandler(app.verbose, app.json, app.quiet, app.plain, output)
}

// identityResolver returns the injected resolver, or builds the configured one.
// The shell resolver falls back to the native one when id(1) is missing.
func (app *CLI) identityResolver(name string) (domain.IdentityResolver, error) {
	if app.identity != nil {
		return app.identity, nil
	}

	runner := platform.NewCommandRunner(app.console)

	if name == platform.ResolverShell && !runner.CommandExists("id") {
		app.console.Warningf("id not found in PATH, using the native resolver")

		name = platform.ResolverNative
	}

	identity, err := platform.NewIdentityResolver(name, runner)
	if err != nil {
		return nil, domain.NewExitError(domain.ExitUsageError, err.Error(), err)
	}

	return identity, nil
}

func (app *CLI) outputFormat() cliAdapter.OutputFormat {
	switch {
	case app.json:
		return cliAdapter.JSONFormat
	case app.plain:
		return cliAdapter.PlainFormat
	default:
		return cliAdapter.TextFormat
	}
}

// defaultAction shows help, or rejects an unknown command.
func (app *CLI) defaultAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return domain.NewExitError(domain.ExitUsageError,
			fmt.Sprintf("'%s' is not a command. Run 'skid --help' to see available commands.", cmd.Args().First()), nil)
	}

	return cli.ShowAppHelp(cmd)
}

// usageError maps flag parsing failures to the usage exit code.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return domain.NewExitError(domain.ExitUsageError, err.Error(), err)
}

// requireArgs checks the positional argument count of cmd.
func requireArgs(cmd *cli.Command, minArgs, maxArgs int) error {
	n := cmd.Args().Len()
	if n < minArgs || n > maxArgs {
		return domain.NewExitError(domain.ExitUsageError,
			fmt.Sprintf("%s: expected %s, got %d argument(s)", cmd.Name, cmd.ArgsUsage, n), nil)
	}

	return nil
}
