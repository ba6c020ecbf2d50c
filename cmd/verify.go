package cmd

import (
	"fmt"
	"log"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
)

func verify(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return nil
	}
	client, err := newLocalClient(cfg, log.Default(), nil)
	if err != nil {
		common.PrintRuntimeErr(ctx, "verify", "client", fmt.Errorf("%s", rectifyError(err)))
		return nil
	}
	acc, err := client.Verify()
	if err != nil {
		common.PrintRuntimeErr(ctx, "verify", "verify", fmt.Errorf("%s", rectifyError(err)))
		return nil
	}
	fmt.Printf("Credentials OK, logged in as @%s (id %s)\n", acc.Username, acc.ID)
	return nil
}
