package api

import (
	"encoding/json"
	"errors"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/internal/server"
)

func (s *Api) postHandler(sconn *server.SyncConn, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.PostParams
	if len(body) > 0 {
		if err := json.Unmarshal(body, &m); err != nil {
			return common.UPDATE_POST, nil, err
		}
	}
	text := m.Text
	if text == "" {
		text = s.cfg.Message
	}
	if text == "" {
		return common.UPDATE_POST, nil, errors.New("no post text configured")
	}
	media := m.Media
	if len(media) == 0 {
		if err := s.pool.Index(); err == nil {
			if ref := s.pool.Random(); ref != "" {
				media = []string{ref}
			}
		}
	}

	post, ids, err := s.publish(text, media)
	if err != nil {
		return common.UPDATE_POST, nil, err
	}
	res := &common.PostResponse{
		PostId: post.ID,
		Text:   post.Text,
	}
	for _, id := range ids {
		res.MediaIds = append(res.MediaIds, string(id))
	}
	return common.UPDATE_POST, res, nil
}
