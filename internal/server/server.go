// Package server implements the framed JSON RPC control plane of the
// fridayd daemon over a unix socket (named pipe on Windows, TCP fallback).
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/fridayd/fridayd/common"
)

// Server manages RPC connections from CLI clients over the control socket.
// It dispatches incoming requests to registered handlers.
type Server struct {
	log      *log.Logger
	handler  map[common.UpdateType]HandlerFunc
	port     int
	socket   string
	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a Server. port is the TCP fallback port used when the
// socket transport is unavailable.
func NewServer(l *log.Logger, port int) *Server {
	return &Server{
		log:     l,
		handler: make(map[common.UpdateType]HandlerFunc),
		port:    port,
	}
}

// RegisterHandler associates a handler function with a specific method.
// When a request with the given method is received, the corresponding
// handler is invoked.
func (s *Server) RegisterHandler(method common.UpdateType, handler HandlerFunc) {
	s.handler[method] = handler
}

// Start begins listening for incoming connections and blocks until the
// context is canceled. Each connection is handled in its own goroutine.
func (s *Server) Start(ctx context.Context) error {
	l, err := s.createListener()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Println("Error accepting: ", err.Error())
			continue
		}
		go s.handleConnection(conn)
	}
}

// Shutdown gracefully stops the server by closing the listener and removing
// the socket file.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.Printf("Error closing listener: %v", err)
		}
		s.listener = nil
	}
	removeSocket(s)
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	sconn := NewSyncConn(conn)
	defer conn.Close()
	for {
		buf, err := sconn.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			s.log.Println("Error reading:", err.Error())
			break
		}
		err = s.handlerWrapper(sconn, buf)
		if err != nil {
			s.log.Println("Error handling:", err.Error())
			break
		}
	}
}

func (s *Server) handlerWrapper(sconn *SyncConn, b []byte) error {
	req, err := ParseRequest(b)
	if err != nil {
		return fmt.Errorf("error parsing request: %s", err.Error())
	}
	rHandler, ok := s.handler[req.Method]
	if !ok {
		err = sconn.Write(CreateError("unknown method: " + string(req.Method)))
		if err != nil {
			return fmt.Errorf("error writing response: %s", err.Error())
		}
		return nil
	}
	utype, msg, err := rHandler(sconn, req.Message)
	if err != nil {
		err = sconn.Write(InitError(err))
		if err != nil {
			return fmt.Errorf("error writing response: %s", err.Error())
		}
		return nil
	}
	err = sconn.Write(MakeResult(utype, msg))
	if err != nil {
		return fmt.Errorf("error writing response: %s", err.Error())
	}
	return nil
}
