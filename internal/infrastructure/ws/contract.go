package ws

import (
	"encoding/json"
	"time"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/game"
)

type WSMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Data   any    `json:"data"`
}

// Inbound is a client envelope whose payload is decoded per event type.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound payloads
type ChatMessageIn struct {
	Text string                 `json:"text"`
	File *domain.FileAttachment `json:"file,omitempty"`
}

type TypingIn struct {
	IsTyping bool `json:"isTyping"`
}

type DeleteMessageIn struct {
	MsgID string `json:"msgId"`
}

type StartGameIn struct {
	Game string `json:"game"`
}

type PlayMoveIn struct {
	MsgID string `json:"msgId"`
	// Move is a string for rock paper scissors, a cell index for tic tac toe.
	Move any `json:"move"`
}

type PlayerInputIn struct {
	Dir string `json:"dir"`
}

// Outbound payloads
type MessagePayload struct {
	ID        string                 `json:"id"`
	Type      domain.MessageKind     `json:"type"`
	User      string                 `json:"user"`
	Text      string                 `json:"text,omitempty"`
	File      *domain.FileAttachment `json:"file,omitempty"`
	Game      string                 `json:"game,omitempty"`
	State     any                    `json:"state,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

func NewMessagePayload(m *domain.Message) MessagePayload {
	p := MessagePayload{
		ID:        m.ID,
		Type:      m.Kind,
		User:      m.User,
		Text:      m.Text,
		File:      m.File,
		Timestamp: m.CreatedAt.Format(time.RFC3339),
	}
	if m.Game != nil {
		p.Game = string(m.Game.Kind)
		p.State = m.Game.State()
	}
	return p
}

type InitPayload struct {
	Messages []MessagePayload `json:"messages"`
}

type TypingPayload struct {
	User     string `json:"user"`
	IsTyping bool   `json:"isTyping"`
}

type MessageDeletedPayload struct {
	MsgID string `json:"msgId"`
}

type PresencePayload struct {
	User  string `json:"user"`
	Role  string `json:"role,omitempty"`
	Count int    `json:"count"`
}

type RoleAssignedPayload struct {
	Role        string `json:"role"`
	PlayerIndex int    `json:"playerIndex"`
}

type GameOverPayload struct {
	Winner *int             `json:"winner"`
	State  *game.SnakeState `json:"state"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewChatMessage(roomID string, m *domain.Message) *WSMessage {
	return &WSMessage{
		Type:   EventChatMessage,
		RoomID: roomID,
		Data:   NewMessagePayload(m),
	}
}

func NewInit(roomID string, msgs []*domain.Message) *WSMessage {
	payload := InitPayload{Messages: make([]MessagePayload, 0, len(msgs))}
	for _, m := range msgs {
		payload.Messages = append(payload.Messages, NewMessagePayload(m))
	}
	return &WSMessage{
		Type:   EventInit,
		RoomID: roomID,
		Data:   payload,
	}
}

func NewTyping(roomID, user string, isTyping bool) *WSMessage {
	return &WSMessage{
		Type:   EventTyping,
		RoomID: roomID,
		Data:   TypingPayload{User: user, IsTyping: isTyping},
	}
}

func NewMessageDeleted(roomID, msgID string) *WSMessage {
	return &WSMessage{
		Type:   EventMessageDeleted,
		RoomID: roomID,
		Data:   MessageDeletedPayload{MsgID: msgID},
	}
}

func NewGameUpdated(roomID string, m *domain.Message) *WSMessage {
	return &WSMessage{
		Type:   EventGameUpdated,
		RoomID: roomID,
		Data:   NewMessagePayload(m),
	}
}

func NewUserJoined(roomID, user, role string, count int) *WSMessage {
	return &WSMessage{
		Type:   EventUserJoined,
		RoomID: roomID,
		Data:   PresencePayload{User: user, Role: role, Count: count},
	}
}

func NewUserLeft(roomID, user string, count int) *WSMessage {
	return &WSMessage{
		Type:   EventUserLeft,
		RoomID: roomID,
		Data:   PresencePayload{User: user, Count: count},
	}
}

func NewRoleAssigned(roomID, role string, playerIndex int) *WSMessage {
	return &WSMessage{
		Type:   EventRoleAssigned,
		RoomID: roomID,
		Data:   RoleAssignedPayload{Role: role, PlayerIndex: playerIndex},
	}
}

func NewGameStart(roomID string, state *game.SnakeState) *WSMessage {
	return &WSMessage{
		Type:   EventGameStart,
		RoomID: roomID,
		Data:   state,
	}
}

func NewSnakeState(roomID string, state *game.SnakeState) *WSMessage {
	return &WSMessage{
		Type:   EventSnakeState,
		RoomID: roomID,
		Data:   state,
	}
}

func NewGameOver(roomID string, state *game.SnakeState) *WSMessage {
	return &WSMessage{
		Type:   EventGameOver,
		RoomID: roomID,
		Data:   GameOverPayload{Winner: state.Winner, State: state},
	}
}

func NewError(roomID, message string) *WSMessage {
	return &WSMessage{
		Type:   EventError,
		RoomID: roomID,
		Data:   ErrorPayload{Message: message},
	}
}
