// Package postcli is the client library for the fridayd control protocol.
// It speaks length-prefixed JSON frames over the daemon's unix socket
// (named pipe on Windows), falling back to TCP.
package postcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/fridayd/fridayd/common"
)

type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// NewClient connects to a running daemon.
func NewClient() (*Client, error) {
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("error connecting to daemon: %s", err.Error())
	}
	return &Client{conn: conn}, nil
}

// Close terminates the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func dialTCP() (net.Conn, error) {
	port := common.DefaultTCPPort
	if v := os.Getenv(common.TCPPortEnv); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		}
	}
	return net.Dial("tcp", net.JoinHostPort(common.TCPHost, strconv.Itoa(port)))
}

func (c *Client) invoke(method common.UpdateType, message any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, err := json.Marshal(&Request{
		Method:  method,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	err = write(c.conn, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	buf, err = read(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	var res Response
	err = json.Unmarshal(buf, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", method, err.Error())
	}
	if !res.Ok {
		return nil, errors.New(res.Error)
	}
	if res.Update == nil {
		return nil, nil
	}
	return res.Update.Message, nil
}
