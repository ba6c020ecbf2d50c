package common

// StatusResponse reports the daemon's scheduling state.
type StatusResponse struct {
	Username     string `json:"username,omitempty"`
	Weekday      int    `json:"weekday"`
	TriggerTime  string `json:"trigger_time"`
	SecondsUntil int64  `json:"seconds_until"`
	QueueLength  int    `json:"queue_length"`
}

// PostParams requests an immediate publish. Empty fields fall back to the
// daemon's configured message and media pool.
type PostParams struct {
	Text  string   `json:"text,omitempty"`
	Media []string `json:"media,omitempty"`
}

type PostResponse struct {
	PostId   string   `json:"post_id"`
	Text     string   `json:"text"`
	MediaIds []string `json:"media_ids,omitempty"`
}

type QueueAddParams struct {
	Text  string   `json:"text"`
	Media []string `json:"media,omitempty"`
}

type QueueAddResponse struct {
	Id int64 `json:"id"`
}

// QueueEntry is one pending post as stored by the daemon.
type QueueEntry struct {
	Id      int64    `json:"id"`
	Text    string   `json:"text"`
	Media   []string `json:"media,omitempty"`
	AddedAt string   `json:"added_at"`
}

type QueueListResponse struct {
	Entries []QueueEntry `json:"entries"`
}

type QueueRemoveParams struct {
	Id int64 `json:"id"`
}

type QueueRemoveResponse struct {
	Removed bool `json:"removed"`
}

type StopResponse struct {
	Stopping bool `json:"stopping"`
}
