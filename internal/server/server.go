package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/trivio-games/trivio/internal/logging"
	"github.com/trivio-games/trivio/internal/protocol"
	"github.com/trivio-games/trivio/internal/trivia"
)

const msgInternalError = "Internal server error."

func New(config *Config, identity *trivia.Identity, rooms *trivia.Rooms, games *trivia.Games, store trivia.Store) *Server {
	return &Server{
		config:   config,
		identity: identity,
		rooms:    rooms,
		games:    games,
		store:    store,
	}
}

// Server accepts TCP clients and runs one session per connection.
type Server struct {
	config   *Config
	identity *trivia.Identity
	rooms    *trivia.Rooms
	games    *trivia.Games
	store    trivia.Store
}

// Serve listens on the configured address until the context is canceled.
// Live connections are drained before Serve returns.
func (srv *Server) Serve(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("server")

	ln, err := net.Listen("tcp", srv.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.config.Addr, err)
	}

	logger.Infof("listening on %s", ln.Addr())

	var conns sync.WaitGroup

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				conns.Wait()
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}

			conns.Add(1)
			go func() {
				defer conns.Done()
				srv.handle(ctx, conn)
			}()
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

func (srv *Server) handle(ctx context.Context, conn net.Conn) {
	logger := logging.FromContext(ctx).Named("server.handle")
	logger.Infof("client connected: %s", conn.RemoteAddr())

	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Warnf("close connection: %v", err)
		}
	}()

	// cancellation unblocks the pending read
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	session := NewSession(logger, srv.identity, srv.rooms, srv.games, srv.store)
	defer session.Close()

	for {
		req, err := protocol.ReadRequest(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) && ctx.Err() == nil {
				logger.Warnf("read request from %s: %v", conn.RemoteAddr(), err)
			}
			logger.Infof("client disconnected: %s", srv.who(session, conn))
			return
		}

		logger.Debugf("request %s from %s", req.Code, srv.who(session, conn))

		resp, err := session.Dispatch(req)
		if errors.Is(err, IrrelevantRequestErr) {
			logger.Warnf("irrelevant request %s from %s, dropping connection", req.Code, srv.who(session, conn))
			if err := resp.Write(conn); err != nil {
				logger.Warnf("write response to %s: %v", conn.RemoteAddr(), err)
			}
			return
		}
		if err != nil {
			logger.Errorf("dispatch %s: %v", req.Code, err)
			if resp, err = errorResponse(msgInternalError); err != nil {
				return
			}
		}

		if err := resp.Write(conn); err != nil {
			logger.Warnf("write response to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func (srv *Server) who(session *Session, conn net.Conn) string {
	if username := session.Username(); username != "" {
		return username
	}
	return conn.RemoteAddr().String()
}
