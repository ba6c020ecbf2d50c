package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/urfave/cli"

	"github.com/fridayd/fridayd/cmd/common"
	"github.com/fridayd/fridayd/internal/config"
	"github.com/fridayd/fridayd/pkg/postlib"
)

// loadConfig reads the config file, printing a friendly message (and
// returning nil) when a default file was just created or loading failed.
func loadConfig(ctx *cli.Context) *config.Config {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigCreated) {
			fmt.Printf("Created a default config file at %s.\n", path)
			fmt.Println("Fill in the twitter credentials and run again.")
			return nil
		}
		common.PrintRuntimeErr(ctx, ctx.Command.Name, "load_config", err)
		return nil
	}
	return cfg
}

// newLocalClient builds a posting client from the local config, wiring the
// optional proxy and chunk size.
func newLocalClient(cfg *config.Config, l *log.Logger, handlers *postlib.Handlers) (*postlib.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	httpClient, err := postlib.NewHTTPClient(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	chunkSize, err := cfg.ChunkSizeBytes()
	if err != nil {
		return nil, err
	}
	return postlib.NewClient(cfg.Credentials, &postlib.ClientOpts{
		HTTPClient: httpClient,
		ChunkSize:  chunkSize,
		Handlers:   handlers,
		Logger:     l,
	})
}
