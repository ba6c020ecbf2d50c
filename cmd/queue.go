package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
	"github.com/fridayd/fridayd/pkg/postcli"
)

func queueAdd(ctx *cli.Context) error {
	text := postText
	if text == "" {
		text = strings.Join(ctx.Args(), " ")
	}
	media := postMedia.Value()
	if text == "" && len(media) == 0 {
		return common.PrintErrWithCmdHelp(ctx,
			fmt.Errorf("queue entry needs text or media"))
	}

	c, err := postcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "connect", err)
		return nil
	}
	defer c.Close()

	id, err := c.QueueAdd(text, media)
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "add", err)
		return nil
	}
	fmt.Printf("Queued post %d\n", id)
	return nil
}

func queueList(ctx *cli.Context) error {
	c, err := postcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "connect", err)
		return nil
	}
	defer c.Close()

	entries, err := c.QueueList()
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "list", err)
		return nil
	}
	if len(entries) == 0 {
		fmt.Println("No pending posts.")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%4d  %s", e.Id, e.Text)
		if len(e.Media) > 0 {
			line += fmt.Sprintf("  [%s]", strings.Join(e.Media, ", "))
		}
		fmt.Println(line)
	}
	return nil
}

func queueRemove(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("no id provided"))
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("invalid id %q", arg))
	}

	c, err := postcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "connect", err)
		return nil
	}
	defer c.Close()

	removed, err := c.QueueRemove(id)
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "remove", err)
		return nil
	}
	if !removed {
		fmt.Printf("No pending post with id %d\n", id)
		return nil
	}
	fmt.Printf("Removed post %d\n", id)
	return nil
}
