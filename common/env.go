// Package common provides shared types and constants used across the fridayd
// client-server communication layer.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for custom socket path.
	SocketPathEnv = "FRIDAYD_SOCKET_PATH"

	// TCPPortEnv is the environment variable for custom TCP port.
	TCPPortEnv = "FRIDAYD_TCP_PORT"

	// ForceTCPEnv is the environment variable to force TCP connections.
	ForceTCPEnv = "FRIDAYD_FORCE_TCP"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "FRIDAYD_DEBUG"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "FRIDAYD_CONFIG"
)

// Environment overrides for config file fields. Each one, when set,
// replaces the corresponding value loaded from the config file.
const (
	ConsumerKeyEnv       = "FRIDAYD_CONSUMER_KEY"
	ConsumerSecretEnv    = "FRIDAYD_CONSUMER_SECRET"
	AccessTokenKeyEnv    = "FRIDAYD_ACCESS_TOKEN_KEY"
	AccessTokenSecretEnv = "FRIDAYD_ACCESS_TOKEN_SECRET"
	MessageEnv           = "FRIDAYD_MESSAGE"
	WeekdayEnv           = "FRIDAYD_WEEKDAY"
	TimeEnv              = "FRIDAYD_TIME"
	ProxyEnv             = "FRIDAYD_PROXY"
)
