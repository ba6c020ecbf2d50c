package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/fridayd/fridayd/pkg/postlib"
)

func rectifyError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "network issue"
	} else if errors.Is(err, postlib.ErrRateLimitExceeded) {
		return "rate limited by the remote, try again later"
	} else if strings.Contains(err.Error(), "no such host") {
		return "not connected to internet"
	}
	return err.Error()
}
