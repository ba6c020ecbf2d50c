package server

import (
	"encoding/json"

	"github.com/fridayd/fridayd/common"
)

// HandlerFunc defines the signature for RPC request handlers.
// It receives a synchronized connection and the raw JSON message body, and
// returns the update type for the response, the response payload, and any
// error encountered.
type HandlerFunc func(
	conn *SyncConn,
	body json.RawMessage,
) (
	common.UpdateType,
	any,
	error,
)
