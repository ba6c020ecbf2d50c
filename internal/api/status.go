package api

import (
	"encoding/json"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/internal/server"
)

func (s *Api) statusHandler(sconn *server.SyncConn, body json.RawMessage) (common.UpdateType, any, error) {
	n, err := s.queue.Len()
	if err != nil {
		return common.UPDATE_STATUS, nil, err
	}
	res := &common.StatusResponse{
		Weekday:     s.cfg.Weekday,
		TriggerTime: s.cfg.Time,
		QueueLength: n,
	}
	if s.account != nil {
		res.Username = s.account.Username
	}
	if s.trigger != nil {
		res.SecondsUntil = int64(s.trigger.NextIn().Seconds())
	}
	return common.UPDATE_STATUS, res, nil
}
