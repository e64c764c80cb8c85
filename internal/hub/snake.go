package hub

import (
	"context"
	"math/rand"
	"time"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/game"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

func (h *Hub) funroom(roomID string) *funroomState {
	f, ok := h.funrooms[roomID]
	if !ok {
		f = &funroomState{
			snake: game.NewSnake(rand.New(rand.NewSource(time.Now().UnixNano()))),
		}
		h.funrooms[roomID] = f
	}
	return f
}

// maybeStartSnake begins a match when both player slots are filled and
// no match is in progress.
func (h *Hub) maybeStartSnake(roomID string) {
	f, ok := h.funrooms[roomID]
	if !ok || f.snake.Status != game.SnakeWaiting {
		return
	}
	if f.playerConns[0] == "" || f.playerConns[1] == "" {
		return
	}

	f.snake.Start(h.cfg.SnakeTimer, h.now())
	h.broadcast(roomID, ws.NewGameStart(roomID, f.snake))
	h.startTicker(roomID, f)
	h.metrics.GamesStarted.WithLabelValues(string(game.KindSnake)).Inc()
}

// startTicker is idempotent; a funroom has at most one ticker.
func (h *Hub) startTicker(roomID string, f *funroomState) {
	if f.ticking {
		return
	}
	stop := make(chan struct{})
	f.stopTick = stop
	f.ticking = true

	go func() {
		t := time.NewTicker(game.SnakeTickPeriod)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				h.do(func() { h.tickSnake(roomID) })
			}
		}
	}()
}

func (h *Hub) stopTicker(f *funroomState) {
	if !f.ticking {
		return
	}
	close(f.stopTick)
	f.ticking = false
}

func (h *Hub) tickSnake(roomID string) {
	f, ok := h.funrooms[roomID]
	if !ok || f.snake.Status != game.SnakeRunning {
		return
	}

	f.snake.Tick(h.now())
	h.metrics.SnakeTicksTotal.Inc()
	h.broadcast(roomID, ws.NewSnakeState(roomID, f.snake))

	if f.snake.Status == game.SnakeGameOver {
		h.finishSnake(context.Background(), roomID, f)
	}
}

func (h *Hub) finishSnake(ctx context.Context, roomID string, f *funroomState) {
	h.stopTicker(f)
	h.broadcast(roomID, ws.NewGameOver(roomID, f.snake))
	h.metrics.GamesFinished.WithLabelValues(string(game.KindSnake)).Inc()

	winner := ""
	if f.snake.Winner != nil {
		if connID := f.playerConns[*f.snake.Winner]; connID != "" {
			if m, ok := h.byConn[connID]; ok {
				winner = m.session.Username
			}
		}
	}
	h.publisher.GameFinished(ctx, roomID, string(game.KindSnake), winner)
}

// releasePlayerSlot handles a connection leaving a funroom. A departing
// player forfeits a running match, and the oldest spectator, if any, is
// promoted into the freed slot.
func (h *Hub) releasePlayerSlot(ctx context.Context, roomID string, f *funroomState, connID string) {
	idx := -1
	for i, conn := range f.playerConns {
		if conn == connID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	f.playerConns[idx] = ""

	if f.snake.Status == game.SnakeRunning {
		f.snake.Forfeit(idx)
		h.finishSnake(ctx, roomID, f)
	}

	if next := h.oldestSpectator(roomID); next != nil {
		f.playerConns[idx] = next.session.ConnID
		next.session.Role = domain.RolePlayer
		next.sender.Send(ws.NewRoleAssigned(roomID, string(domain.RolePlayer), idx))
	}
}

func (h *Hub) oldestSpectator(roomID string) *member {
	var oldest *member
	for _, m := range h.members[roomID] {
		if m.session.Role != domain.RoleSpectator {
			continue
		}
		if oldest == nil || m.seq < oldest.seq {
			oldest = m
		}
	}
	return oldest
}

// PlayerInput buffers a direction change for the next tick.
func (h *Hub) PlayerInput(connID, dir string) error {
	d, ok := game.ParseDirection(dir)
	if !ok {
		return domain.ErrInvalidInput
	}

	var err error
	h.doWait(func() {
		m, exists := h.byConn[connID]
		if !exists {
			err = domain.ErrNotInRoom
			return
		}
		f, exists := h.funrooms[m.session.RoomID]
		if !exists {
			err = domain.ErrInvalidInput
			return
		}

		idx := playerIndex(f, connID)
		if idx < 0 {
			err = domain.ErrNotPlayer
			return
		}
		f.snake.SetPending(idx, d)
	})
	return err
}

// PlayAgain resets a finished match back to waiting and starts a new
// one immediately when both slots are still occupied.
func (h *Hub) PlayAgain(connID string) error {
	var err error
	h.doWait(func() {
		m, exists := h.byConn[connID]
		if !exists {
			err = domain.ErrNotInRoom
			return
		}
		roomID := m.session.RoomID
		f, exists := h.funrooms[roomID]
		if !exists {
			err = domain.ErrInvalidInput
			return
		}
		if f.snake.Status != game.SnakeGameOver {
			return
		}

		f.snake.Reset()
		h.broadcast(roomID, ws.NewSnakeState(roomID, f.snake))
		h.maybeStartSnake(roomID)

		h.log.Info(logging.Game, logging.Lifecycle, "snake rematch requested", map[logging.ExtraKey]any{
			logging.RoomId: roomID,
			logging.ConnId: connID,
		})
	})
	return err
}

func playerIndex(f *funroomState, connID string) int {
	for i, conn := range f.playerConns {
		if conn == connID {
			return i
		}
	}
	return -1
}
