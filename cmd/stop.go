package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
	"github.com/fridayd/fridayd/pkg/postcli"
)

func stop(ctx *cli.Context) error {
	c, err := postcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "stop", "connect", err)
		return nil
	}
	defer c.Close()

	stopping, err := c.Stop()
	if err != nil {
		common.PrintRuntimeErr(ctx, "stop", "stop", err)
		return nil
	}
	if stopping {
		fmt.Println("Daemon is shutting down.")
	}
	return nil
}
