// Package signal is the WebSocket transport boundary: it upgrades
// connections, assigns connection ids, and dispatches inbound events to the
// coordinator. All signaling payloads pass through opaque.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/leshko/huddle/internal/app"
	"github.com/leshko/huddle/internal/config"
	"github.com/leshko/huddle/internal/core"
	"github.com/leshko/huddle/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

const (
	writeWait = 5 * time.Second
	chatLimit = 10
	chatEvery = 10 * time.Second
)

type Controller struct {
	Coord *app.Coordinator

	readLimit  int64
	pingPeriod time.Duration
	chat       *RateLimiter
}

func NewController(coord *app.Coordinator, cfg *config.Config) *Controller {
	readLimit := cfg.ReadLimit
	if readLimit <= 0 {
		readLimit = 65536
	}
	pingPeriod := cfg.PingPeriod
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	return &Controller{
		Coord:      coord,
		readLimit:  readLimit,
		pingPeriod: pingPeriod,
		chat:       NewRateLimiter(chatLimit, chatEvery),
	}
}

// WsConn adapts *websocket.Conn to core.SignalConnection. One write pump
// drains send, preserving per-connection outbound order.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs one read pump and one write
// pump for the connection's lifetime. Handlers are registered exactly once
// per connection; a reconnect is a brand-new connection with a fresh id.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	// Connection id is server-assigned, one per tab, never the session cookie.
	sid := domain.ConnID(uuid.NewString())

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(sid)).Msg("new ws connection")

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, 64),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Coord.Register(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
