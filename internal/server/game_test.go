package server

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chessboy-go/internal/config"
	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/testutil"
)

func newTestGame(t *testing.T, factory EngineFactory) *Game {
	t.Helper()
	cfg := config.NewConfigBuilder().WithLog(io.Discard).Build()
	manager := NewGameManager(factory, cfg)
	t.Cleanup(func() { _ = manager.Shutdown() })
	g, err := manager.Create("", 0)
	require.NoError(t, err)
	return g
}

func decodeView(t *testing.T, msg Message) View {
	t.Helper()
	require.Equal(t, MessageState, msg.Type)
	var view View
	require.NoError(t, json.Unmarshal(msg.Payload, &view))
	return view
}

func frame(t *testing.T, kind MessageType, payload interface{}) []byte {
	t.Helper()
	msg := Message{Type: kind}
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = data
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return data
}

func TestGame_PeersReceiveEveryChange(t *testing.T) {
	g := newTestGame(t, nil)
	a, b := &recorder{}, &recorder{}
	g.addPeer(a)
	g.addPeer(b)
	assert.Equal(t, 2, g.PeerCount())

	// Each peer is greeted with the current state.
	assert.Equal(t, engine.InitialFEN, decodeView(t, a.last(t)).FEN)

	require.NoError(t, g.receive(frame(t, MessageMove, engine.EncodedMove{From: 12, To: 28})))
	require.NoError(t, g.receive(frame(t, MessageMove, map[string]string{"uci": "c7c5"})))

	for _, p := range []*recorder{a, b} {
		msgs := p.all()
		require.Len(t, msgs, 3)
		view := decodeView(t, msgs[2])
		assert.Equal(t, g.ID, view.ID)
		assert.Equal(t, 2, view.Ply)
		assert.Equal(t, "white", view.SideToMove)
	}

	g.removePeer(b)
	require.NoError(t, g.receive(frame(t, MessageUndo, nil)))
	assert.Len(t, a.all(), 4)
	assert.Len(t, b.all(), 3)
	assert.Equal(t, 1, decodeView(t, a.last(t)).Ply)
}

func TestGame_Position(t *testing.T) {
	g := newTestGame(t, nil)
	p := &recorder{}
	g.addPeer(p)

	require.NoError(t, g.receive(frame(t, MessagePosition, positionRequest{FEN: testutil.PromotionFEN})))
	view := decodeView(t, p.last(t))
	assert.Equal(t, testutil.PromotionFEN, view.FEN)
	assert.Equal(t, 0, view.Ply)
}

func TestGame_ReceiveErrors(t *testing.T) {
	g := newTestGame(t, nil)

	tests := []struct {
		name   string
		data   []byte
		status int
	}{
		{"not json", []byte("nope"), 400},
		{"unknown type", frame(t, "resign", nil), 400},
		{"bad position payload", []byte(`{"type":"position","payload":"fen"}`), 400},
		{"bad fen", frame(t, MessagePosition, positionRequest{FEN: "x"}), 400},
		{"illegal move", frame(t, MessageMove, map[string]string{"uci": "e1e2"}), 422},
		{"nothing to undo", frame(t, MessageUndo, nil), 409},
		{"no engine", frame(t, MessageEngine, nil), 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.receive(tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.status, statusFor(err))
		})
	}
	assert.Equal(t, engine.InitialFEN, engine.Encode(g.Session().State()))
}

func TestGame_EngineMoveBroadcast(t *testing.T) {
	eng := &scriptedEngine{reply: engine.EncodedMove{From: 12, To: 28}}
	g := newTestGame(t, scriptedFactory(eng))
	p := &recorder{}
	g.addPeer(p)

	require.NoError(t, g.receive(frame(t, MessageEngine, nil)))
	require.Eventually(t, func() bool { return len(p.all()) == 2 }, 5*time.Second, 10*time.Millisecond)

	view := decodeView(t, p.last(t))
	assert.Equal(t, 1, view.Ply)
	assert.Equal(t, []engine.EncodedMove{{From: 12, To: 28}}, view.History)
}

func TestGame_EngineFailureBroadcast(t *testing.T) {
	eng := &scriptedEngine{err: io.ErrUnexpectedEOF}
	g := newTestGame(t, scriptedFactory(eng))
	p := &recorder{}
	g.addPeer(p)

	require.NoError(t, g.RequestEngineMove())
	require.Eventually(t, func() bool { return p.last(t).Type == MessageError }, 5*time.Second, 10*time.Millisecond)

	msg := p.last(t)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Contains(t, payload.Error, io.ErrUnexpectedEOF.Error())
}

func TestGame_StaleEngineReplyIsDropped(t *testing.T) {
	eng := &scriptedEngine{reply: engine.EncodedMove{From: 12, To: 28}, release: make(chan struct{})}
	g := newTestGame(t, scriptedFactory(eng))
	p := &recorder{}
	g.addPeer(p)

	require.NoError(t, g.RequestEngineMove())
	require.NoError(t, g.receive(frame(t, MessageMove, map[string]string{"uci": "d2d4"})))
	close(eng.release)

	// The engine's e2e4 was for the initial position and must not be played.
	time.Sleep(50 * time.Millisecond)
	state := g.Session().State()
	assert.Equal(t, 1, state.Ply())
	assert.Equal(t, "d2d4", state.History()[0].String())
	for _, msg := range p.all() {
		assert.NotEqual(t, MessageError, msg.Type)
	}
}
