package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swaroop-surya/chatroom/internal/game"
)

type MessageKind string

const (
	MessageChat MessageKind = "chat"
	MessageGame MessageKind = "game"
)

// FileAttachment is the opaque result of the upload collaborator,
// carried on a chat message as-is.
type FileAttachment struct {
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	Mime         string `json:"mime"`
	Size         int64  `json:"size"`
}

// Message is one entry in a room's append-only log. ConnID records the
// authoring connection for delete authorization and is never sent to
// clients.
type Message struct {
	ID        string          `json:"id"`
	RoomID    string          `json:"-"`
	Kind      MessageKind     `json:"type"`
	User      string          `json:"user"`
	ConnID    string          `json:"-"`
	Text      string          `json:"text,omitempty"`
	File      *FileAttachment `json:"file,omitempty"`
	Game      *game.Embedded  `json:"-"`
	CreatedAt time.Time       `json:"-"`
}

type MessageRepository interface {
	Append(ctx context.Context, message *Message) error
	GetByRoomID(ctx context.Context, roomID string) ([]*Message, error)
	GetByID(ctx context.Context, roomID, messageID string) (*Message, error)
	// DeleteByAuthor removes a message only when requesterConnID matches
	// the recorded author connection; otherwise ErrNotAuthor.
	DeleteByAuthor(ctx context.Context, roomID, messageID, requesterConnID string) error
	DeleteByRoomID(ctx context.Context, roomID string) error
	// Sweep drops messages older than the TTL across all rooms and
	// reports how many were removed.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
	CountByRoomID(ctx context.Context, roomID string) (int, error)
}

func NewChatMessage(roomID, user, connID, text string, file *FileAttachment) *Message {
	return &Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Kind:      MessageChat,
		User:      user,
		ConnID:    connID,
		Text:      text,
		File:      file,
		CreatedAt: time.Now(),
	}
}

func NewGameMessage(roomID, user, connID string, embedded *game.Embedded) *Message {
	return &Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Kind:      MessageGame,
		User:      user,
		ConnID:    connID,
		Game:      embedded,
		CreatedAt: time.Now(),
	}
}
