package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/swaroop-surya/chatroom/internal/domain"
)

type roomRepository struct {
	rooms     map[string]*domain.Room // ID -> Room
	nameIndex map[string]*domain.Room // lowercased name -> Room
	mu        *sync.RWMutex
}

func NewRoomRepository() domain.RoomRepository {
	return &roomRepository{
		rooms:     make(map[string]*domain.Room),
		nameIndex: make(map[string]*domain.Room),
		mu:        &sync.RWMutex{},
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create adds a room if its ID and name are unique.
func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" || room.Name == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomExists
	}
	if _, exists := r.nameIndex[nameKey(room.Name)]; exists {
		return domain.ErrRoomExists
	}

	r.rooms[room.ID] = room
	r.nameIndex[nameKey(room.Name)] = room

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	return room, nil
}

// List returns rooms of the given kind, or all rooms when kind is empty.
func (r *roomRepository) List(ctx context.Context, kind domain.RoomKind) ([]*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if kind == "" || room.Kind == kind {
			out = append(out, room)
		}
	}

	return out, nil
}

// Delete removes a room by ID. The lobby is never deleted.
func (r *roomRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if id == domain.LobbyID {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, exists := r.rooms[id]
	if !exists {
		return domain.ErrRoomNotFound
	}

	delete(r.rooms, id)
	delete(r.nameIndex, nameKey(room.Name))

	return nil
}
