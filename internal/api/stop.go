package api

import (
	"encoding/json"
	"time"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/internal/server"
)

func (s *Api) stopHandler(sconn *server.SyncConn, body json.RawMessage) (common.UpdateType, any, error) {
	// Delay the shutdown slightly so the response frame reaches the
	// client before the listener goes down.
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.stop()
	}()
	return common.UPDATE_STOP, &common.StopResponse{Stopping: true}, nil
}
