// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"

	cliAdapter "github.com/janderssonse/skid/internal/adapters/cli"
	"github.com/janderssonse/skid/internal/docs"
	"github.com/janderssonse/skid/internal/domain"
	"github.com/urfave/cli/v3"
)

func (app *CLI) createGIDsCommand() *cli.Command {
	return &cli.Command{
		Name:      "gids",
		Usage:     "Print the GIDs a user is compatible with",
		ArgsUsage: "[USERNAME]",
		Description: `Prints the GIDs of every group listing USERNAME as a member, in file
order, followed by the user's primary GID. USERNAME defaults to the
current user.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "terminated",
				Usage: "append the configured number of zero sentinels",
			},
		},
		OnUsageError: usageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 0, 1); err != nil {
				return err
			}

			h, err := app.newHandler(cmd)
			if err != nil {
				return err
			}

			return h.GIDs(ctx, cmd.Args().First(), cmd.Bool("terminated"))
		},
	}
}

func (app *CLI) createGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:         "groups",
		Usage:        "Show a table of a user's groups",
		ArgsUsage:    "[USERNAME]",
		OnUsageError: usageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 0, 1); err != nil {
				return err
			}

			h, err := app.newHandler(cmd)
			if err != nil {
				return err
			}

			return h.Groups(ctx, cmd.Args().First())
		},
	}
}

func (app *CLI) createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Exit 0 if GID is compatible with a user, 5 otherwise",
		ArgsUsage: "GID [USERNAME]",
		Description: `Checks whether GID is the primary GID of USERNAME or the GID of a group
listing USERNAME as a member. USERNAME defaults to the current user.`,
		OnUsageError: usageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, 2); err != nil {
				return err
			}

			h, err := app.newHandler(cmd)
			if err != nil {
				return err
			}

			return h.Check(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
		},
	}
}

func (app *CLI) createMatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Match a user against a single group record",
		ArgsUsage: "USERNAME RECORD",
		Description: `Runs the membership matcher on RECORD, a literal group(5) line such as
'docker:x:134:alice,bob'. Prints the GID and exits 0 on a match, exits 5
otherwise. The group file is not read.`,
		OnUsageError: usageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2, 2); err != nil {
				return err
			}

			if err := app.initOutput(); err != nil {
				return err
			}

			h := app.newMatchHandler()

			return h.Match(cmd.Args().Get(0), cmd.Args().Get(1))
		},
	}
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			if err := app.initOutput(); err != nil {
				return err
			}

			switch {
			case app.json:
				app.console.JSONResult("success", map[string]any{
					"name":    "skid",
					"version": Version,
				})
			case app.plain:
				app.console.PlainValue(Version)
			default:
				app.console.Result(fmt.Sprintf("%s %s", app.console.Header("skid"), Version))
			}

			return nil
		},
	}
}

func (app *CLI) createDocsCommand() *cli.Command {
	return &cli.Command{
		Name:         "docs",
		Usage:        "Show reference documentation",
		ArgsUsage:    "[TOPIC]",
		OnUsageError: usageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 0, 1); err != nil {
				return err
			}

			if err := app.initOutput(); err != nil {
				return err
			}

			if !cmd.Args().Present() {
				return app.listTopics()
			}

			return app.showTopic(cmd.Args().First())
		},
	}
}

func (app *CLI) listTopics() error {
	rows := [][]string{}
	for _, topic := range docs.Topics() {
		rows = append(rows, []string{topic, docs.Title(topic)})
	}

	output := app.baseHandler().GetOutput()

	if err := output.Table([]string{"TOPIC", "TITLE"}, rows); err != nil {
		return domain.NewExitError(domain.ExitGeneralError, "failed to output results", err)
	}

	if app.outputFormat() == cliAdapter.TextFormat {
		_ = output.Info("\nRun 'skid docs TOPIC' to read a topic.")
	}

	return nil
}

// showTopic renders a topic on a terminal and prints raw markdown otherwise.
func (app *CLI) showTopic(topic string) error {
	source, err := docs.Lookup(topic)
	if err != nil {
		return domain.NewExitError(domain.ExitNotFoundError, err.Error(), err)
	}

	if app.json {
		app.console.JSONResult("success", map[string]any{
			"topic":    topic,
			"markdown": source,
		})

		return nil
	}

	if !app.plain && app.console.IsTTY(app.stdout) {
		rendered, err := docs.Render(source)
		if err == nil {
			source = rendered
		}
	}

	_, _ = fmt.Fprint(app.stdout, source)

	return nil
}
