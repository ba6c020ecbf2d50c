package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/fridayd/fridayd/cmd/common"
	"github.com/fridayd/fridayd/internal/pool"
	"github.com/fridayd/fridayd/pkg/postcli"
	"github.com/fridayd/fridayd/pkg/postlib"
)

func post(ctx *cli.Context) error {
	media := postMedia.Value()

	if !postLocal {
		if c, err := postcli.NewClient(); err == nil {
			defer c.Close()
			res, err := c.Post(&postcli.PostOpts{Text: postText, Media: media})
			if err != nil {
				common.PrintRuntimeErr(ctx, "post", "daemon", err)
				return nil
			}
			fmt.Printf("Posted %s: %s\n", res.PostId, res.Text)
			return nil
		}
		// no daemon running, post directly
	}
	return postDirect(ctx, media)
}

func postDirect(ctx *cli.Context, media []string) error {
	cfg := loadConfig(ctx)
	if cfg == nil {
		return nil
	}

	p := mpb.New()
	bars := make(map[string]*mpb.Bar)
	last := make(map[string]time.Time)
	handlers := &postlib.Handlers{
		UploadStartHandler: func(fileName string, totalBytes int64) {
			bars[fileName] = common.InitUploadBar(p, fileName, totalBytes)
			last[fileName] = time.Now()
		},
		UploadProgressHandler: func(fileName string, nwritten int) {
			if bar, ok := bars[fileName]; ok {
				bar.EwmaIncrBy(nwritten, time.Since(last[fileName]))
				last[fileName] = time.Now()
			}
		},
	}

	client, err := newLocalClient(cfg, log.Default(), handlers)
	if err != nil {
		common.PrintRuntimeErr(ctx, "post", "client", err)
		return nil
	}

	text := postText
	if text == "" {
		text = cfg.Message
	}
	if len(media) == 0 {
		mp := pool.New(cfg.MediaFiles)
		if err := mp.Index(); err == nil {
			if ref := mp.Random(); ref != "" {
				media = []string{ref}
			}
		}
	}

	var ids []postlib.MediaID
	for _, ref := range media {
		id, err := client.UploadMedia(ref, 0)
		if err != nil {
			common.PrintRuntimeErr(ctx, "post", "upload", fmt.Errorf("%s: %s", ref, rectifyError(err)))
			return nil
		}
		ids = append(ids, id)
	}
	p.Wait()

	created, err := client.Publish(text, ids)
	if err != nil {
		common.PrintRuntimeErr(ctx, "post", "publish", fmt.Errorf("%s", rectifyError(err)))
		return nil
	}
	fmt.Printf("Posted %s: %s\n", created.ID, created.Text)
	return nil
}
