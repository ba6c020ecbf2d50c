// Package api implements the daemon-side RPC methods and the scheduled
// publish action that fires on the weekly trigger.
package api

import (
	"errors"
	"log"
	"time"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/internal/config"
	"github.com/fridayd/fridayd/internal/pool"
	"github.com/fridayd/fridayd/internal/queue"
	"github.com/fridayd/fridayd/internal/server"
	"github.com/fridayd/fridayd/pkg/postlib"
)

// Trigger is the scheduling view the API needs for status reporting.
type Trigger interface {
	NextIn() time.Duration
}

type Api struct {
	log     *log.Logger
	client  *postlib.Client
	queue   *queue.Queue
	pool    *pool.Pool
	cfg     *config.Config
	account *postlib.Account
	trigger Trigger
	stop    func()
}

func NewApi(l *log.Logger, client *postlib.Client, q *queue.Queue, p *pool.Pool, cfg *config.Config, stop func()) (*Api, error) {
	return &Api{
		log:    l,
		client: client,
		queue:  q,
		pool:   p,
		cfg:    cfg,
		stop:   stop,
	}, nil
}

// SetAccount records the account verified at startup for status reporting.
func (s *Api) SetAccount(acc *postlib.Account) {
	s.account = acc
}

// SetTrigger attaches the running timer.
func (s *Api) SetTrigger(t Trigger) {
	s.trigger = t
}

func (s *Api) RegisterHandlers(server *server.Server) {
	server.RegisterHandler(common.UPDATE_STATUS, s.statusHandler)
	server.RegisterHandler(common.UPDATE_POST, s.postHandler)
	server.RegisterHandler(common.UPDATE_QUEUE_ADD, s.queueAddHandler)
	server.RegisterHandler(common.UPDATE_QUEUE_LIST, s.queueListHandler)
	server.RegisterHandler(common.UPDATE_QUEUE_REMOVE, s.queueRemoveHandler)
	server.RegisterHandler(common.UPDATE_STOP, s.stopHandler)
}

func (s *Api) Close() error {
	return s.queue.Close()
}

// PublishScheduled is the weekly trigger action. A pending queue entry
// takes precedence; otherwise the configured message is posted with a
// randomly picked media file from the pool. A rate-limited queue entry is
// pushed back so it fires on the next cycle instead of being lost.
func (s *Api) PublishScheduled() error {
	entry, err := s.queue.Next()
	if err != nil && !errors.Is(err, queue.ErrEmpty) {
		return err
	}

	var text string
	var media []string
	if entry != nil {
		text, media = entry.Text, entry.Media
	} else {
		text = s.cfg.Message
		if err := s.pool.Index(); err != nil {
			s.log.Printf("media pool index failed: %s", err.Error())
		}
		if ref := s.pool.Random(); ref != "" {
			media = []string{ref}
		}
	}

	post, _, err := s.publish(text, media)
	if err != nil {
		if entry != nil && errors.Is(err, postlib.ErrRateLimitExceeded) {
			if _, qerr := s.queue.Push(entry.Text, entry.Media); qerr != nil {
				s.log.Printf("re-queueing rate-limited post failed: %s", qerr.Error())
			}
		}
		return err
	}
	s.log.Printf("published post %s", post.ID)
	return nil
}

// publish uploads each media reference and creates the post.
func (s *Api) publish(text string, media []string) (*postlib.Post, []postlib.MediaID, error) {
	chunkSize, err := s.cfg.ChunkSizeBytes()
	if err != nil {
		return nil, nil, err
	}
	var ids []postlib.MediaID
	for _, ref := range media {
		id, err := s.client.UploadMedia(ref, chunkSize)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
	}
	post, err := s.client.Publish(text, ids)
	if err != nil {
		return nil, nil, err
	}
	return post, ids, nil
}
