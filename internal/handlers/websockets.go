package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12
	defaultInterval = time.Second
	maxInterval     = 10 * time.Second
)

// wsEnvelope frames every message on /ws in both directions.
type wsEnvelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

const (
	wsTypeDashboard = "dashboard"
	wsTypeError     = "error"
	wsTypeRefresh   = "refresh"
)

// The dashboard page may be served from a dev proxy on another origin.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Dashboard stream
// @Description  WebSocket. The server polls the dashboard every interval (default 1s, max 10s) and pushes {"type":"dashboard","data":Dashboard} when it changed. Sending {"type":"refresh"} forces a push.
// @Tags         cleaner
// @Param        interval     query  string  false  "Go duration, e.g. 2s"
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := streamInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &dashboardStream{h: h, conn: conn, refresh: make(chan struct{}, 1), done: make(chan struct{})}
	go s.readLoop()
	s.writeLoop(c.Request.Context(), interval)
}

// streamInterval reads ?interval=2s, falling back to ?interval_ms=2000, within (0, maxInterval].
func streamInterval(c *gin.Context) time.Duration {
	if d, err := time.ParseDuration(c.Query("interval")); err == nil && d > 0 && d <= maxInterval {
		return d
	}
	if ms, err := strconv.Atoi(c.Query("interval_ms")); err == nil {
		if d := time.Duration(ms) * time.Millisecond; d > 0 && d <= maxInterval {
			return d
		}
	}
	return defaultInterval
}

// dashboardStream is one /ws connection. Only writeLoop writes to conn.
type dashboardStream struct {
	h       *Handler
	conn    *websocket.Conn
	refresh chan struct{}
	done    chan struct{}
	last    []byte
}

// readLoop handles pongs and refresh requests until the peer goes away.
func (s *dashboardStream) readLoop() {
	defer close(s.done)
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if s.h.log != nil {
				s.h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var msg wsEnvelope
		if json.Unmarshal(raw, &msg) == nil && msg.Type == wsTypeRefresh {
			select {
			case s.refresh <- struct{}{}:
			default:
			}
		}
	}
}

func (s *dashboardStream) writeLoop(ctx context.Context, interval time.Duration) {
	poll := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer poll.Stop()
	defer ping.Stop()

	if err := s.push(ctx, true); err != nil {
		s.logWriteErr("initial", err)
		return
	}
	for {
		var err error
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		case <-s.refresh:
			err = s.push(ctx, true)
		case <-poll.C:
			err = s.push(ctx, false)
		}
		if err != nil {
			s.logWriteErr("loop", err)
			return
		}
	}
}

// push sends the dashboard when it differs from the last frame or force is set.
// A failed snapshot sends an error frame and ends the stream.
func (s *dashboardStream) push(ctx context.Context, force bool) error {
	d, err := s.h.services.Dashboard.Snapshot(ctx)
	if err != nil {
		if s.h.log != nil {
			s.h.log.Errorw("ws_dashboard_snapshot_failed", "err", err)
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = s.conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: errGetDashboard})
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if !force && bytes.Equal(data, s.last) {
		return nil
	}
	s.last = data
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: wsTypeDashboard, Data: data})
}

func (s *dashboardStream) logWriteErr(stage string, err error) {
	if s.h.log != nil {
		s.h.log.Infow("ws_write_failed", "stage", stage, "err", err)
	}
}
