package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
	"github.com/lgbarn/chessboy-go/internal/session"
)

type createRequest struct {
	FEN   string `json:"fen"`
	Level int    `json:"level"`
}

type positionRequest struct {
	FEN string `json:"fen"`
}

type engineRequest struct {
	Level int `json:"level"`
}

// requestError is a body the server could not make sense of.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return "bad request: " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

// statusFor maps an error to the HTTP status reported for it.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrTooManyGames):
		return fiber.StatusTooManyRequests
	case errors.Is(err, errors.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrEngineBusy), errors.Is(err, errors.ErrNothingToUndo):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrEngine):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// applyMoveBody plays a move given either as an encoded move or as
// {"uci": "e2e4"}.
func applyMoveBody(s *session.Session, body []byte) (session.Snapshot, error) {
	var text struct {
		UCI *string `json:"uci"`
	}
	if err := json.Unmarshal(body, &text); err != nil {
		return session.Snapshot{}, badRequest(err)
	}
	if text.UCI != nil {
		return s.ApplyUCI(*text.UCI)
	}

	var em engine.EncodedMove
	if err := json.Unmarshal(body, &em); err != nil {
		return session.Snapshot{}, badRequest(err)
	}
	return s.ApplyEncodedMove(em)
}

// Handlers serves the REST API.
type Handlers struct {
	games *GameManager
}

// NewHandlers creates the REST handlers.
func NewHandlers(games *GameManager) *Handlers {
	return &Handlers{games: games}
}

// game loads the game named in the route.
func (h *Handlers) game(c *fiber.Ctx) (*Game, error) {
	return h.games.Get(c.Params("id"))
}

// ListGames returns every game.
func (h *Handlers) ListGames(c *fiber.Ctx) error {
	games := h.games.List()
	views := make([]View, 0, len(games))
	for _, g := range games {
		views = append(views, g.View())
	}
	return c.JSON(views)
}

// CreateGame starts a game, optionally from a FEN.
func (h *Handlers) CreateGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return fail(c, badRequest(err))
		}
	}

	g, err := h.games.Create(req.FEN, req.Level)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(g.View())
}

// GetGame returns the state of a game.
func (h *Handlers) GetGame(c *fiber.Ctx) error {
	g, err := h.game(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(g.View())
}

// DeleteGame ends a game.
func (h *Handlers) DeleteGame(c *fiber.Ctx) error {
	if err := h.games.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PlayMove applies a move from the request body.
func (h *Handlers) PlayMove(c *fiber.Ctx) error {
	g, err := h.game(c)
	if err != nil {
		return fail(c, err)
	}
	snap, err := applyMoveBody(g.session, c.Body())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(g.view(snap))
}

// Undo takes back the last move.
func (h *Handlers) Undo(c *fiber.Ctx) error {
	g, err := h.game(c)
	if err != nil {
		return fail(c, err)
	}
	snap, err := g.session.Undo()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(g.view(snap))
}

// SetPosition replaces the game with a position given as FEN.
func (h *Handlers) SetPosition(c *fiber.Ctx) error {
	g, err := h.game(c)
	if err != nil {
		return fail(c, err)
	}
	var req positionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, badRequest(err))
	}
	snap, err := g.session.Load(req.FEN)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(g.view(snap))
}

// EngineMove asks the engine to move. The reply is accepted at once; the
// engine's move is pushed to websocket peers when it arrives.
func (h *Handlers) EngineMove(c *fiber.Ctx) error {
	g, err := h.game(c)
	if err != nil {
		return fail(c, err)
	}
	if len(c.Body()) > 0 {
		var req engineRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return fail(c, badRequest(err))
		}
		if req.Level > 0 {
			g.session.SetLevel(req.Level)
		}
	}
	if err := g.RequestEngineMove(); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(g.View())
}
