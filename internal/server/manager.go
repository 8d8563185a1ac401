package server

import (
	"context"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboy-go/internal/bridge"
	"github.com/lgbarn/chessboy-go/internal/config"
	"github.com/lgbarn/chessboy-go/internal/errors"
	"github.com/lgbarn/chessboy-go/internal/session"
)

// initTimeout bounds an engine's startup handshake.
const initTimeout = 10 * time.Second

// GameManager owns every game the server knows about.
type GameManager struct {
	mu    sync.RWMutex
	games map[string]*Game

	newEngine   EngineFactory
	level       int
	moveTimeout time.Duration
	maxGames    int
}

// NewGameManager creates a manager whose games get their engines from
// newEngine.
func NewGameManager(newEngine EngineFactory, cfg *config.Config) *GameManager {
	return &GameManager{
		games:       make(map[string]*Game),
		newEngine:   newEngine,
		level:       cfg.Engine.Level,
		moveTimeout: cfg.Engine.MoveTimeout,
		maxGames:    cfg.Server.MaxGames,
	}
}

// Create starts a game at fen, or at the initial position when fen is
// empty. A level of 0 uses the configured default.
func (m *GameManager) Create(fen string, level int) (*Game, error) {
	if level <= 0 {
		level = m.level
	}
	level = bridge.ClampLevel(level)

	if m.full() {
		return nil, errors.ErrTooManyGames
	}

	var eng bridge.Engine
	if m.newEngine != nil {
		eng = m.newEngine(level)
		ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
		err := eng.Init(ctx)
		cancel()
		if err != nil {
			return nil, err
		}
	}

	s := session.New(eng, level)
	if fen != "" {
		if _, err := s.Load(fen); err != nil {
			quit(eng)
			return nil, err
		}
	}

	g := newGame(uuid.New().String(), petname.Generate(2, "-"), s, eng, m.moveTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxGames > 0 && len(m.games) >= m.maxGames {
		quit(eng)
		return nil, errors.ErrTooManyGames
	}
	m.games[g.ID] = g
	log.Infof("game %s (%s) created", g.ID, g.Name)
	return g, nil
}

func (m *GameManager) full() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxGames > 0 && len(m.games) >= m.maxGames
}

func quit(eng bridge.Engine) {
	if eng == nil {
		return
	}
	if err := eng.Quit(); err != nil {
		log.Warnf("engine %s: %v", eng.ID(), err)
	}
}

// Get returns the game with the given id.
func (m *GameManager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	return g, nil
}

// List returns every game ordered by id.
func (m *GameManager) List() []*Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := maps.Keys(m.games)
	slices.Sort(ids)
	games := make([]*Game, len(ids))
	for i, id := range ids {
		games[i] = m.games[id]
	}
	return games
}

// Len returns the number of games.
func (m *GameManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Delete ends a game and shuts its engine down.
func (m *GameManager) Delete(id string) error {
	m.mu.Lock()
	g, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	log.Infof("game %s (%s) deleted", g.ID, g.Name)
	return g.close()
}

// Shutdown ends every game, reporting all engines that failed to stop.
func (m *GameManager) Shutdown() error {
	m.mu.Lock()
	games := maps.Values(m.games)
	m.games = make(map[string]*Game)
	m.mu.Unlock()

	var result *multierror.Error
	for _, g := range games {
		if err := g.close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "game %s", g.ID))
		}
	}
	return result.ErrorOrNil()
}
