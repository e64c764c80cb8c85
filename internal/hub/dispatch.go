package hub

import (
	"context"
	"encoding/json"

	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

// Dispatch routes an inbound websocket envelope to the matching hub
// operation. Errors go back to the offending client only.
func (h *Hub) Dispatch(c *ws.Client, in *ws.Inbound) {
	ctx := context.Background()
	var err error

	switch in.Type {
	case ws.EventChatMessage:
		var p ws.ChatMessageIn
		if err = json.Unmarshal(in.Data, &p); err == nil {
			err = h.Chat(ctx, c.ID, p.Text, p.File)
		}

	case ws.EventTyping:
		var p ws.TypingIn
		if err = json.Unmarshal(in.Data, &p); err == nil {
			err = h.Typing(c.ID, p.IsTyping)
		}

	case ws.EventDeleteMessage:
		var p ws.DeleteMessageIn
		if err = json.Unmarshal(in.Data, &p); err == nil {
			err = h.DeleteMessage(ctx, c.ID, p.MsgID)
		}

	case ws.EventStartGame:
		var p ws.StartGameIn
		if err = json.Unmarshal(in.Data, &p); err == nil {
			err = h.StartGame(ctx, c.ID, p.Game)
		}

	case ws.EventPlayMove:
		var p ws.PlayMoveIn
		if err = json.Unmarshal(in.Data, &p); err == nil {
			err = h.PlayMove(ctx, c.ID, p.MsgID, p.Move)
		}

	case ws.EventPlayerInput:
		var p ws.PlayerInputIn
		if err = json.Unmarshal(in.Data, &p); err == nil {
			err = h.PlayerInput(c.ID, p.Dir)
		}

	case ws.EventPlayAgain:
		err = h.PlayAgain(c.ID)

	case ws.EventLeaveRoom:
		h.Leave(c.ID)

	default:
		c.Send(ws.NewError(c.RoomID, "unknown event: "+in.Type))
		return
	}

	if err != nil {
		c.Send(ws.NewError(c.RoomID, err.Error()))
	}
}

func (h *Hub) Disconnect(c *ws.Client) {
	h.Leave(c.ID)
}
