package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
	"github.com/fridayd/fridayd/pkg/postcli"
)

var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func status(ctx *cli.Context) error {
	c, err := postcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "connect", err)
		return nil
	}
	defer c.Close()

	res, err := c.Status()
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "status", err)
		return nil
	}
	if res.Username != "" {
		fmt.Printf("Logged in as @%s\n", res.Username)
	}
	day := "?"
	if res.Weekday >= 0 && res.Weekday < len(weekdayNames) {
		day = weekdayNames[res.Weekday]
	}
	next := time.Duration(res.SecondsUntil) * time.Second
	fmt.Printf("Trigger: %s at %s (next in %s)\n", day, res.TriggerTime, next)
	fmt.Printf("Pending posts: %d\n", res.QueueLength)
	return nil
}
