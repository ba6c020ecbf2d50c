package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/internal/server"
)

func (s *Api) queueAddHandler(sconn *server.SyncConn, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.QueueAddParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_QUEUE_ADD, nil, err
	}
	if m.Text == "" && len(m.Media) == 0 {
		return common.UPDATE_QUEUE_ADD, nil, errors.New("queue entry needs text or media")
	}
	id, err := s.queue.Push(m.Text, m.Media)
	if err != nil {
		return common.UPDATE_QUEUE_ADD, nil, err
	}
	return common.UPDATE_QUEUE_ADD, &common.QueueAddResponse{Id: id}, nil
}

func (s *Api) queueListHandler(sconn *server.SyncConn, body json.RawMessage) (common.UpdateType, any, error) {
	entries, err := s.queue.List()
	if err != nil {
		return common.UPDATE_QUEUE_LIST, nil, err
	}
	res := &common.QueueListResponse{Entries: make([]common.QueueEntry, 0, len(entries))}
	for _, e := range entries {
		res.Entries = append(res.Entries, common.QueueEntry{
			Id:      e.Id,
			Text:    e.Text,
			Media:   e.Media,
			AddedAt: e.AddedAt.Format(time.RFC3339),
		})
	}
	return common.UPDATE_QUEUE_LIST, res, nil
}

func (s *Api) queueRemoveHandler(sconn *server.SyncConn, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.QueueRemoveParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_QUEUE_REMOVE, nil, err
	}
	removed, err := s.queue.Remove(m.Id)
	if err != nil {
		return common.UPDATE_QUEUE_REMOVE, nil, err
	}
	return common.UPDATE_QUEUE_REMOVE, &common.QueueRemoveResponse{Removed: removed}, nil
}
