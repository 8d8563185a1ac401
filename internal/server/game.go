package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/lgbarn/chessboy-go/internal/bridge"
	"github.com/lgbarn/chessboy-go/internal/session"
)

// peer is anything a game can push messages to. *websocket.Conn is one.
type peer interface {
	WriteJSON(v interface{}) error
}

// Game is a session shared by the peers watching it.
type Game struct {
	ID      string
	Name    string
	Created time.Time

	session     *session.Session
	engine      bridge.Engine
	moveTimeout time.Duration

	mu    sync.Mutex // Guards peers and serialises writes to them
	peers map[peer]struct{}
}

// View is the JSON form of a game.
type View struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	session.Snapshot
}

func newGame(id, name string, s *session.Session, eng bridge.Engine, moveTimeout time.Duration) *Game {
	g := &Game{
		ID:          id,
		Name:        name,
		Created:     time.Now(),
		session:     s,
		engine:      eng,
		moveTimeout: moveTimeout,
		peers:       make(map[peer]struct{}),
	}
	s.OnChange(func(snap session.Snapshot) {
		g.broadcast(g.stateMessage(snap))
	})
	return g
}

// Session returns the game's session.
func (g *Game) Session() *session.Session {
	return g.session
}

// View returns the current state of the game.
func (g *Game) View() View {
	return g.view(g.session.Snapshot())
}

func (g *Game) view(snap session.Snapshot) View {
	return View{ID: g.ID, Name: g.Name, Snapshot: snap}
}

func (g *Game) stateMessage(snap session.Snapshot) Message {
	return newMessage(MessageState, g.view(snap))
}

// addPeer registers p and sends it the current state.
func (g *Game) addPeer(p peer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.peers[p] = struct{}{}
	if err := p.WriteJSON(g.stateMessage(g.session.Snapshot())); err != nil {
		log.Debugf("game %s: initial state not delivered: %v", g.ID, err)
	}
}

func (g *Game) removePeer(p peer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.peers, p)
}

// PeerCount returns the number of connected peers.
func (g *Game) PeerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.peers)
}

// broadcast sends msg to every peer. A peer that cannot be written to is
// dropped; its read loop notices the broken connection on its own.
func (g *Game) broadcast(msg Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for p := range g.peers {
		if err := p.WriteJSON(msg); err != nil {
			log.Debugf("game %s: dropping peer: %v", g.ID, err)
			delete(g.peers, p)
		}
	}
}

// send writes msg to a single peer.
func (g *Game) send(p peer, msg Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := p.WriteJSON(msg); err != nil {
		log.Debugf("game %s: write failed: %v", g.ID, err)
	}
}

// RequestEngineMove starts an engine search. The engine's move reaches
// peers through the session's change notification; failures are
// broadcast as error messages.
func (g *Game) RequestEngineMove() error {
	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if g.moveTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, g.moveTimeout)
	}
	results, err := g.session.RequestEngineMove(ctx)
	if err != nil {
		cancel()
		return err
	}

	go func() {
		defer cancel()
		for r := range results {
			switch {
			case r.Stale:
			case r.Err != nil:
				g.broadcast(errorMessage(r.Err))
			case r.NoMove:
				log.Infof("game %s: engine has no move in %s", g.ID, r.State.FEN)
			}
		}
	}()
	return nil
}

// handle applies an inbound message.
func (g *Game) handle(msg Message) error {
	switch msg.Type {
	case MessageMove:
		_, err := applyMoveBody(g.session, msg.Payload)
		return err
	case MessagePosition:
		var req positionRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return badRequest(err)
		}
		_, err := g.session.Load(req.FEN)
		return err
	case MessageUndo:
		_, err := g.session.Undo()
		return err
	case MessageEngine:
		return g.RequestEngineMove()
	default:
		return badRequest(errUnknownMessage(msg.Type))
	}
}

// close stops any search and shuts the engine down.
func (g *Game) close() error {
	g.session.CancelEngine()
	if g.engine == nil {
		return nil
	}
	return g.engine.Quit()
}
