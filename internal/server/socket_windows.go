//go:build windows

package server

import (
	"os"

	"github.com/fridayd/fridayd/common"
)

func pipePath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return common.PipePath
}

func forceTCP() bool {
	return os.Getenv(common.ForceTCPEnv) != ""
}
