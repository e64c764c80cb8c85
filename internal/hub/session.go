package hub

import (
	"context"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

// Join attaches a connection to a room. Password verification runs on
// the caller's goroutine; bcrypt is far too slow for the hub loop.
func (h *Hub) Join(ctx context.Context, sender Sender, connID, roomID, username, pass string) error {
	room, err := h.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !h.hasher.Verify(room.PasswordHash, pass) {
		return domain.ErrWrongPassword
	}

	// History is read before entering the loop as well; the repository
	// is safe for concurrent use.
	history, err := h.messages.GetByRoomID(ctx, room.ID)
	if err != nil {
		return err
	}

	h.doWait(func() {
		h.join(ctx, room, sender, connID, username, history)
	})
	return nil
}

func (h *Hub) join(ctx context.Context, room *domain.Room, sender Sender, connID, username string, history []*domain.Message) {
	// A reconnect with the same conn ID replaces the old session.
	if _, ok := h.byConn[connID]; ok {
		h.leave(ctx, connID)
	}

	h.seq++
	m := &member{
		sender: sender,
		seq:    h.seq,
		session: &domain.Session{
			ConnID:   connID,
			Username: username,
			RoomID:   room.ID,
			Role:     domain.RoleChat,
		},
	}

	playerIndex := -1
	if room.Kind == domain.RoomFun {
		f := h.funroom(room.ID)
		playerIndex = freeSlot(f)
		if playerIndex >= 0 {
			f.playerConns[playerIndex] = connID
			m.session.Role = domain.RolePlayer
		} else {
			m.session.Role = domain.RoleSpectator
		}
	}

	if h.members[room.ID] == nil {
		h.members[room.ID] = make(map[string]*member)
	}
	h.members[room.ID][connID] = m
	h.byConn[connID] = m
	h.metrics.ActiveConnections.Inc()

	sender.Send(ws.NewInit(room.ID, history))
	if room.Kind == domain.RoomFun {
		f := h.funrooms[room.ID]
		sender.Send(ws.NewRoleAssigned(room.ID, string(m.session.Role), playerIndex))
		sender.Send(ws.NewSnakeState(room.ID, f.snake))
	}

	h.broadcast(room.ID, ws.NewUserJoined(room.ID, username, string(m.session.Role), len(h.members[room.ID])))

	if room.Kind == domain.RoomFun {
		h.maybeStartSnake(room.ID)
	}

	h.publisher.MemberJoined(ctx, room.ID, username, string(m.session.Role))
	h.log.Info(logging.Room, logging.Join, "member joined", map[logging.ExtraKey]any{
		logging.RoomId:   room.ID,
		logging.ConnId:   connID,
		logging.Username: username,
	})
}

// Leave detaches a connection. It is idempotent; a second call for the
// same conn ID is a no-op.
func (h *Hub) Leave(connID string) {
	h.doWait(func() {
		h.leave(context.Background(), connID)
	})
}

func (h *Hub) leave(ctx context.Context, connID string) {
	m, ok := h.byConn[connID]
	if !ok {
		return
	}

	roomID := m.session.RoomID
	delete(h.byConn, connID)
	delete(h.members[roomID], connID)
	if len(h.members[roomID]) == 0 {
		delete(h.members, roomID)
	}
	h.metrics.ActiveConnections.Dec()

	if f, ok := h.funrooms[roomID]; ok {
		h.releasePlayerSlot(ctx, roomID, f, connID)
		if len(h.members[roomID]) == 0 {
			h.stopTicker(f)
		}
	}

	h.broadcast(roomID, ws.NewUserLeft(roomID, m.session.Username, len(h.members[roomID])))

	h.publisher.MemberLeft(ctx, roomID, m.session.Username)
	h.log.Info(logging.Room, logging.Leave, "member left", map[logging.ExtraKey]any{
		logging.RoomId:   roomID,
		logging.ConnId:   connID,
		logging.Username: m.session.Username,
	})
}

func freeSlot(f *funroomState) int {
	for i, conn := range f.playerConns {
		if conn == "" {
			return i
		}
	}
	return -1
}
