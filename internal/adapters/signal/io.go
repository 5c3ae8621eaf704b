package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/leshko/huddle/internal/domain"
)

// writePump owns all writes to the socket. Closing the conn on exit also
// unblocks the read pump, so a canceled context tears the whole pair down.
func (ctl *Controller) writePump(ctx context.Context, c *WsConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection until it dies. Any exit, graceful close or
// network drop, runs the disconnect path so no membership state leaks.
func (ctl *Controller) readPump(ctx context.Context, sid domain.ConnID, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(sid)).Msg("readPump closing")
		ctl.Coord.Disconnect(sid)
		ctl.chat.Forget(sid)
		c.Close()
	}()

	pongWait := ctl.pingPeriod * 10 / 9
	c.conn.SetReadLimit(ctl.readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("conn", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("conn", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleEvent(sid, c, data)
		}
	}
}

func (ctl *Controller) handleEvent(sid domain.ConnID, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "join-room":
		ctl.handleJoin(sid, c, data)
	case "sending-signal":
		ctl.handleSendingSignal(sid, data)
	case "returning-signal":
		ctl.handleReturningSignal(sid, data)
	case "chat-message":
		ctl.handleChat(sid, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *Controller) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *Controller) sendError(c *WsConn, msg string) {
	ctl.sendJSON(c, map[string]any{
		"type":  "error",
		"error": msg,
	})
}

func (ctl *Controller) handleJoin(sid domain.ConnID, c *WsConn, data []byte) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join-room payload")
		return
	}

	// Join queues the all-users snapshot to this connection itself, before
	// any join notice can trigger traffic toward it.
	if _, err := ctl.Coord.Join(sid, domain.RoomID(p.Room), p.Name); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(sid)).Msg("join rejected")
		ctl.sendError(c, err.Error())
	}
}

func (ctl *Controller) handleSendingSignal(sid domain.ConnID, data []byte) {
	var p sendingSignalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad sending-signal payload")
		return
	}
	// p.CallerID is ignored: the sender identity is the connection the frame
	// arrived on, never what the client claims.
	ctl.Coord.RelayOffer(sid, domain.ConnID(p.UserToSignal), p.Signal)
}

func (ctl *Controller) handleReturningSignal(sid domain.ConnID, data []byte) {
	var p returningSignalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad returning-signal payload")
		return
	}
	ctl.Coord.RelayReturn(sid, domain.ConnID(p.CallerID), p.Signal)
}

func (ctl *Controller) handleChat(sid domain.ConnID, data []byte) {
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat-message payload")
		return
	}
	if !ctl.chat.Allow(sid) {
		log.Warn().Str("module", "signal").Str("conn", string(sid)).Msg("chat rate limited")
		return
	}
	ctl.Coord.Chat(sid, p.Message)
}
