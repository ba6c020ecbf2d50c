//go:build !windows

package postcli

import (
	"net"
	"os"
	"path/filepath"

	"github.com/fridayd/fridayd/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), common.SocketName)
}

func dial() (net.Conn, error) {
	conn, err := net.Dial("unix", socketPath())
	if err == nil {
		return conn, nil
	}
	return dialTCP()
}
