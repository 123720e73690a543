/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package linkserver receives deep links over a websocket so an already
// running demowin can be asked to show a window.
//
// Clients connect to ws://<addr>/link and send {"link":"clock"} (or
// {"link":""} to withdraw the request). Every message is answered with
// {"ok":true,"link":"clock"} or {"ok":false,"error":"..."}.
package linkserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"demowin/internal/demo"
	applog "demowin/internal/log"

	"github.com/gorilla/websocket"
)

// Path is the websocket endpoint.
const Path = "/link"

// Request is a client message.
type Request struct {
	Link string `json:"link"`
}

// Response answers every Request.
type Response struct {
	OK    bool   `json:"ok"`
	Link  string `json:"link,omitempty"`
	Error string `json:"error,omitempty"`
}

// Server holds the most recently requested link. It satisfies the link
// source a session polls once per frame.
type Server struct {
	addr     string
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	link demo.Link

	listener net.Listener
	http     *http.Server
	wg       sync.WaitGroup
	conns    map[*websocket.Conn]struct{}
}

// New returns a server that will listen on addr once started.
func New(addr string) *Server {
	return &Server{
		addr: addr,
		log:  applog.WithComponent("linkserver"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Only local tools talk to this endpoint; browsers are not
			// expected, so the Origin header is not checked.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: map[*websocket.Conn]struct{}{},
	}
}

// Link returns the latest requested link, or nil.
func (s *Server) Link() demo.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link
}

// Set replaces the requested link as if a client had sent it.
func (s *Server) Set(l demo.Link) {
	s.mu.Lock()
	s.link = l
	s.mu.Unlock()
}

// Handler serves the websocket endpoint. It is exposed for tests and for
// mounting on an existing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveLink)
	return mux
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("link server stopped", slog.Any("err", err))
		}
	}()
	s.log.Info("link server listening", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr is the bound address after Start, or the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Close stops accepting connections, closes open ones and waits for the
// serve loop to exit.
func (s *Server) Close() error {
	if s.http == nil {
		return nil
	}
	err := s.http.Close()
	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) track(c *websocket.Conn, on bool) {
	s.mu.Lock()
	if on {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
	s.mu.Unlock()
}

func (s *Server) serveLink(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", slog.Any("err", err))
		return
	}
	s.track(c, true)
	defer func() {
		s.track(c, false)
		_ = c.Close()
	}()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("link client gone", slog.Any("err", err))
			}
			return
		}
		var resp Response
		var req Request
		if err := json.Unmarshal(msg, &req); err != nil {
			resp = Response{Error: "bad request: " + err.Error()}
		} else {
			resp = s.handle(req)
		}
		if err := c.WriteJSON(resp); err != nil {
			return
		}
	}
}

func (s *Server) handle(req Request) Response {
	l, err := demo.ParseLink(req.Link)
	if err != nil {
		return Response{Error: err.Error()}
	}
	s.Set(l)
	s.log.Info("link requested", slog.String("link", demo.LinkName(l)))
	return Response{OK: true, Link: demo.LinkName(l)}
}
