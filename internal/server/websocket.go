package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

const gameLocal = "game"

// requireUpgrade rejects plain HTTP requests to websocket routes and
// looks up the game before the connection is upgraded.
func (h *Handlers) requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	g, err := h.game(c)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(gameLocal, g)
	return c.Next()
}

// ServeWS runs one websocket peer until it disconnects.
func (h *Handlers) ServeWS(conn *websocket.Conn) {
	g, ok := conn.Locals(gameLocal).(*Game)
	if !ok {
		conn.Close()
		return
	}

	g.addPeer(conn)
	defer g.removePeer(conn)
	log.Debugf("game %s: peer %s connected", g.ID, conn.RemoteAddr())

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			log.Debugf("game %s: peer gone: %v", g.ID, err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		if err := g.receive(data); err != nil {
			g.send(conn, errorMessage(err))
		}
	}
}

// receive decodes and applies one inbound frame.
func (g *Game) receive(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return badRequest(err)
	}
	return g.handle(msg)
}
