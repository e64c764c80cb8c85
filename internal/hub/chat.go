package hub

import (
	"context"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/game"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

// Chat appends a message to the room log and fans it out to every
// member, sender included.
func (h *Hub) Chat(ctx context.Context, connID, text string, file *domain.FileAttachment) error {
	if text == "" && file == nil {
		return domain.ErrInvalidInput
	}

	var err error
	h.doWait(func() {
		m, ok := h.byConn[connID]
		if !ok {
			err = domain.ErrNotInRoom
			return
		}

		msg := domain.NewChatMessage(m.session.RoomID, m.session.Username, connID, text, file)
		if err = h.messages.Append(ctx, msg); err != nil {
			return
		}

		h.metrics.MessagesTotal.WithLabelValues(string(domain.MessageChat)).Inc()
		h.broadcast(m.session.RoomID, ws.NewChatMessage(m.session.RoomID, msg))
	})
	return err
}

// Typing relays a typing indicator to everyone else in the room.
func (h *Hub) Typing(connID string, isTyping bool) error {
	var err error
	h.doWait(func() {
		m, ok := h.byConn[connID]
		if !ok {
			err = domain.ErrNotInRoom
			return
		}
		h.broadcastExcept(m.session.RoomID, connID,
			ws.NewTyping(m.session.RoomID, m.session.Username, isTyping))
	})
	return err
}

// DeleteMessage removes a message if connID authored it.
func (h *Hub) DeleteMessage(ctx context.Context, connID, msgID string) error {
	var err error
	h.doWait(func() {
		m, ok := h.byConn[connID]
		if !ok {
			err = domain.ErrNotInRoom
			return
		}

		roomID := m.session.RoomID
		if err = h.messages.DeleteByAuthor(ctx, roomID, msgID, connID); err != nil {
			return
		}
		h.broadcast(roomID, ws.NewMessageDeleted(roomID, msgID))
	})
	return err
}

// StartGame embeds a fresh game into a chat message and broadcasts it.
func (h *Hub) StartGame(ctx context.Context, connID, kind string) error {
	embedded, err := game.NewEmbedded(game.Kind(kind))
	if err != nil {
		return domain.ErrInvalidInput
	}

	h.doWait(func() {
		m, ok := h.byConn[connID]
		if !ok {
			err = domain.ErrNotInRoom
			return
		}

		msg := domain.NewGameMessage(m.session.RoomID, m.session.Username, connID, embedded)
		if err = h.messages.Append(ctx, msg); err != nil {
			return
		}

		h.metrics.MessagesTotal.WithLabelValues(string(domain.MessageGame)).Inc()
		h.metrics.GamesStarted.WithLabelValues(kind).Inc()
		h.broadcast(m.session.RoomID, ws.NewChatMessage(m.session.RoomID, msg))

		h.log.Info(logging.Game, logging.Lifecycle, "game started", map[logging.ExtraKey]any{
			logging.RoomId:   m.session.RoomID,
			logging.GameKind: kind,
			logging.Username: m.session.Username,
		})
	})
	return err
}

// PlayMove applies a move to a game embedded in message msgID. Moves
// that the engine rejects are dropped without an error broadcast.
func (h *Hub) PlayMove(ctx context.Context, connID, msgID string, move any) error {
	var err error
	h.doWait(func() {
		m, ok := h.byConn[connID]
		if !ok {
			err = domain.ErrNotInRoom
			return
		}

		roomID := m.session.RoomID
		msg, getErr := h.messages.GetByID(ctx, roomID, msgID)
		if getErr != nil {
			err = getErr
			return
		}
		if msg.Game == nil {
			err = domain.ErrInvalidInput
			return
		}

		wasDone := msg.Game.Done()
		if !msg.Game.Apply(m.session.Username, move) {
			return
		}

		h.broadcast(roomID, ws.NewGameUpdated(roomID, msg))

		if !wasDone && msg.Game.Done() {
			h.metrics.GamesFinished.WithLabelValues(string(msg.Game.Kind)).Inc()
			h.publisher.GameFinished(ctx, roomID, string(msg.Game.Kind), gameWinner(msg.Game))
		}
	})
	return err
}

func gameWinner(e *game.Embedded) string {
	switch e.Kind {
	case game.KindRPS:
		if e.RPS.Result != nil {
			return e.RPS.Result.Winner
		}
	case game.KindTTT:
		return e.TTT.Winner
	}
	return ""
}
