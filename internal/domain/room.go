package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LobbyID is the pre-seeded chat room every client may join without a
// password. It is never swept, regardless of age or emptiness.
const LobbyID = "lobby"

type RoomKind string

const (
	RoomChat RoomKind = "chat"
	RoomFun  RoomKind = "funroom"
)

// Room holds the static identity of a room. Live membership, roles and
// game state belong to the hub, which owns them exclusively.
type Room struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         RoomKind  `json:"kind"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, kind RoomKind) ([]*Room, error)
	Delete(ctx context.Context, id string) error
}

func NewRoom(name string, kind RoomKind, passwordHash []byte) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	return &Room{
		ID:           uuid.NewString(),
		Name:         name,
		Kind:         kind,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

func (r *Room) HasPassword() bool {
	return len(r.PasswordHash) > 0
}

func (r *Room) IsLobby() bool {
	return r.ID == LobbyID
}

// ChatRoomSummary is the lobby listing entry for plain chat rooms.
type ChatRoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"users"`
}

// FunroomSummary is the listing entry for game rooms.
type FunroomSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PlayerCount    int    `json:"players"`
	SpectatorCount int    `json:"spectators"`
}
