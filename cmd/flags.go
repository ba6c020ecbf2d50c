package cmd

import "github.com/urfave/cli"

var (
	configPath string
	postText   string
	postMedia  cli.StringSlice
	postLocal  bool
)

var configFlag = cli.StringFlag{
	Name:        "config, c",
	Usage:       "path of the config file",
	EnvVar:      "FRIDAYD_CONFIG",
	Destination: &configPath,
}

var runFlags = []cli.Flag{
	configFlag,
}

var postFlags = []cli.Flag{
	configFlag,
	cli.StringFlag{
		Name:        "message, m",
		Usage:       "text of the post (defaults to the configured message)",
		Destination: &postText,
	},
	cli.StringSliceFlag{
		Name:  "file, f",
		Usage: "media file, directory entry or URL to attach (repeatable)",
		Value: &postMedia,
	},
	cli.BoolFlag{
		Name:        "local, l",
		Usage:       "post directly without going through the daemon",
		Destination: &postLocal,
	},
}

var queueAddFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "message, m",
		Usage:       "text of the queued post",
		Destination: &postText,
	},
	cli.StringSliceFlag{
		Name:  "file, f",
		Usage: "media reference to attach (repeatable)",
		Value: &postMedia,
	},
}

var verifyFlags = []cli.Flag{
	configFlag,
}
