package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
	"github.com/fridayd/fridayd/internal/api"
	"github.com/fridayd/fridayd/internal/pool"
	"github.com/fridayd/fridayd/internal/queue"
	"github.com/fridayd/fridayd/internal/server"
	"github.com/fridayd/fridayd/pkg/logger"
	"github.com/fridayd/fridayd/pkg/postlib"
)

// trigger is satisfied by both the weekly timer and the cron timer.
type trigger interface {
	NextIn() time.Duration
	Run(ctx context.Context)
}

func run(ctx *cli.Context) error {
	l := log.Default()
	lg := logger.NewStandardLogger(l)
	defer lg.Close()

	cfg := loadConfig(ctx)
	if cfg == nil {
		return nil
	}

	client, err := newLocalClient(cfg, l, nil)
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "client", err)
		return nil
	}
	acc, err := client.Verify()
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "verify", err)
		return nil
	}
	lg.Info("logged in as @%s", acc.Username)

	q, err := queue.Open(cfg.QueueFile)
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "queue", err)
		return nil
	}

	p := pool.New(cfg.MediaFiles)
	if err = p.Index(); err != nil {
		lg.Warning("media pool index failed: %s", err.Error())
	}
	lg.Info("media pool holds %d entries", p.Len())

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := api.NewApi(l, client, q, p, cfg, cancel)
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "new_api", err)
		return nil
	}
	defer a.Close()
	a.SetAccount(acc)

	var t trigger
	if cfg.CronSchedule != "" {
		t, err = postlib.NewCronTimer(cfg.CronSchedule, a.PublishScheduled, l)
	} else {
		t, err = postlib.NewTimer(cfg.Weekday, cfg.Time, a.PublishScheduled, l)
	}
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "timer", err)
		return nil
	}
	a.SetTrigger(t)
	lg.Info("next post in %s", t.NextIn().Round(time.Second))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		lg.Info("shutting down")
		cancel()
	}()

	go t.Run(runCtx)

	serv := server.NewServer(l, cfg.TCPPort())
	a.RegisterHandlers(serv)
	return serv.Start(runCtx)
}
