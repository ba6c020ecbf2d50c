//go:build windows

package postcli

import (
	"net"
	"os"
	"time"

	"github.com/Microsoft/go-winio"
	"github.com/fridayd/fridayd/common"
)

func pipePath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return common.PipePath
}

func dial() (net.Conn, error) {
	if os.Getenv(common.ForceTCPEnv) != "" {
		return dialTCP()
	}
	timeout := 2 * time.Second
	conn, err := winio.DialPipe(pipePath(), &timeout)
	if err == nil {
		return conn, nil
	}
	return dialTCP()
}
