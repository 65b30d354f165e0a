package trivia

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trivio-games/trivio/internal/logging"
)

var GameNotFoundErr = fmt.Errorf("game not found")

func NewGames(store Store) *Games {
	return &Games{
		store:      store,
		games:      map[uint64]*Game{},
		finishedAt: map[uint64]time.Time{},
	}
}

// Games is the registry of running matches, keyed by room id. The first
// starter creates the game, everyone else attaches to it.
type Games struct {
	store Store

	mtx        sync.Mutex
	games      map[uint64]*Game
	finishedAt map[uint64]time.Time
}

// GetOrCreate returns the room's game, drawing a fresh question set when
// the game does not exist yet. Concurrent starters receive one instance.
func (gs *Games) GetOrCreate(roomID uint64, questionCount uint32) (*Game, error) {
	gs.mtx.Lock()
	defer gs.mtx.Unlock()

	if g, ok := gs.games[roomID]; ok {
		return g, nil
	}

	questions, err := gs.store.Questions(int(questionCount))
	if err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}

	g := NewGame(roomID, questions, gs.store)
	gs.games[roomID] = g

	return g, nil
}

func (gs *Games) Fetch(roomID uint64) (*Game, error) {
	gs.mtx.Lock()
	defer gs.mtx.Unlock()

	g, ok := gs.games[roomID]
	if !ok {
		return nil, GameNotFoundErr
	}

	return g, nil
}

func (gs *Games) Delete(roomID uint64) {
	gs.mtx.Lock()
	defer gs.mtx.Unlock()

	delete(gs.games, roomID)
	delete(gs.finishedAt, roomID)
}

// Reap sweeps finished games on a fixed cadence and evicts each one,
// together with its room, once it has sat finished for the grace period.
// The grace gives lingering clients a window to collect results.
func (gs *Games) Reap(ctx context.Context, rooms *Rooms, interval, grace time.Duration) {
	logger := logging.FromContext(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range gs.sweep(grace) {
				rooms.Delete(id)
				logger.Infof("reaped finished game %d", id)
			}
		}
	}
}

func (gs *Games) sweep(grace time.Duration) []uint64 {
	gs.mtx.Lock()
	defer gs.mtx.Unlock()

	now := time.Now()

	var evicted []uint64
	for id, g := range gs.games {
		if !g.IsFinished() {
			delete(gs.finishedAt, id)
			continue
		}

		finished, ok := gs.finishedAt[id]
		if !ok {
			gs.finishedAt[id] = now
			continue
		}

		if now.Sub(finished) >= grace {
			delete(gs.games, id)
			delete(gs.finishedAt, id)
			evicted = append(evicted, id)
		}
	}

	return evicted
}
