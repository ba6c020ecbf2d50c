package common

// UpdateType identifies an RPC method of the daemon control protocol.
type UpdateType string

const (
	UPDATE_STATUS       UpdateType = "status"
	UPDATE_POST         UpdateType = "post"
	UPDATE_QUEUE_ADD    UpdateType = "queue_add"
	UPDATE_QUEUE_LIST   UpdateType = "queue_list"
	UPDATE_QUEUE_REMOVE UpdateType = "queue_remove"
	UPDATE_STOP         UpdateType = "stop"
)

const (
	// MaxMessageSize bounds a single framed protocol message. Frames
	// announcing a larger payload are rejected before allocation.
	MaxMessageSize = 4 * 1024 * 1024

	// TCPHost is the host the TCP fallback listener binds to. Loopback
	// only; the control protocol is not authenticated.
	TCPHost = "localhost"

	// DefaultTCPPort is used when the socket transport is unavailable and
	// no port override is configured.
	DefaultTCPPort = 4196

	// SocketName is the file name of the unix control socket.
	SocketName = "fridayd.sock"

	// PipePath is the Windows named pipe of the control protocol.
	PipePath = `\\.\pipe\fridayd`
)
