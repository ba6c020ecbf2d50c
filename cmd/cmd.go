// Package cmd wires the fridayd command-line interface.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
)

// BuildArgs carries build-time metadata injected through ldflags.
type BuildArgs struct {
	Version   string
	Commit    string
	Date      string
	BuildType string
}

var (
	version   string
	commit    string
	date      string
	buildType string
)

// Execute runs the CLI with the given arguments.
func Execute(args []string, b BuildArgs) error {
	version = b.Version
	commit = b.Commit
	date = b.Date
	buildType = b.BuildType
	common.VersionCmdStr = fmt.Sprintf(
		"fridayd %s (%s_%s)\nBuild: %s=%s",
		version, runtime.GOOS, runtime.GOARCH, date, commit,
	)

	app := cli.App{
		Name:         "Fridayd",
		HelpName:     "fridayd",
		Usage:        "A weekly social post scheduler.",
		Version:      fmt.Sprintf("%s-%s", version, buildType),
		UsageText:    "fridayd <command> [arguments...]",
		Description:  DESCRIPTION,
		OnUsageError: common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:         "run",
				Usage:        "start the scheduler daemon",
				Description:  RunDescription,
				OnUsageError: common.UsageErrorCallback,
				Action:       run,
				Flags:        runFlags,
			},
			{
				Name:                   "post",
				Aliases:                []string{"p"},
				Usage:                  "publish a post immediately",
				Description:            PostDescription,
				OnUsageError:           common.UsageErrorCallback,
				Action:                 post,
				Flags:                  postFlags,
				UseShortOptionHandling: true,
			},
			{
				Name:         "status",
				Aliases:      []string{"s"},
				Usage:        "show the daemon's schedule and queue state",
				Description:  StatusDescription,
				OnUsageError: common.UsageErrorCallback,
				Action:       status,
			},
			{
				Name:         "queue",
				Aliases:      []string{"q"},
				Usage:        "manage pending posts",
				Description:  QueueDescription,
				OnUsageError: common.UsageErrorCallback,
				Subcommands: []cli.Command{
					{
						Name:                   "add",
						Usage:                  "append a pending post",
						Action:                 queueAdd,
						Flags:                  queueAddFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:   "list",
						Usage:  "list pending posts",
						Action: queueList,
					},
					{
						Name:      "remove",
						Usage:     "remove a pending post by id",
						ArgsUsage: "<id>",
						Action:    queueRemove,
					},
				},
			},
			{
				Name:         "verify",
				Usage:        "check the configured credentials",
				Description:  VerifyDescription,
				OnUsageError: common.UsageErrorCallback,
				Action:       verify,
				Flags:        verifyFlags,
			},
			{
				Name:         "stop",
				Usage:        "stop a running daemon",
				Description:  StopDescription,
				OnUsageError: common.UsageErrorCallback,
				Action:       stop,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "prints installed version of fridayd",
				Action:  common.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	return app.Run(args)
}
