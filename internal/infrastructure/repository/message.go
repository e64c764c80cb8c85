package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swaroop-surya/chatroom/internal/domain"
)

// Oldest messages are evicted when capacity is exceeded.
type messageRepository struct {
	messages map[string][]*domain.Message // roomID -> []Message
	capacity int
	mu       *sync.RWMutex
}

func NewMessageRepository(capacity int) domain.MessageRepository {
	if capacity <= 0 {
		capacity = 500
	}
	return &messageRepository{
		capacity: capacity,
		messages: make(map[string][]*domain.Message),
		mu:       &sync.RWMutex{},
	}
}

func (r *messageRepository) Append(ctx context.Context, message *domain.Message) error {
	if message == nil || message.RoomID == "" {
		return domain.ErrInvalidInput
	}

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	roomMsgs := append(r.messages[message.RoomID], message)

	// Evict oldest if over capacity
	if len(roomMsgs) > r.capacity {
		excess := len(roomMsgs) - r.capacity
		roomMsgs = append([]*domain.Message(nil), roomMsgs[excess:]...)
	}

	r.messages[message.RoomID] = roomMsgs

	return nil
}

func (r *messageRepository) GetByRoomID(ctx context.Context, roomID string) ([]*domain.Message, error) {
	if roomID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	roomMsgs := r.messages[roomID]

	// Return a copy to prevent external mutation of the slice
	cpy := make([]*domain.Message, len(roomMsgs))
	copy(cpy, roomMsgs)

	return cpy, nil
}

func (r *messageRepository) GetByID(ctx context.Context, roomID, messageID string) (*domain.Message, error) {
	if roomID == "" || messageID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, msg := range r.messages[roomID] {
		if msg.ID == messageID {
			return msg, nil
		}
	}

	return nil, domain.ErrMessageNotFound
}

func (r *messageRepository) DeleteByAuthor(ctx context.Context, roomID, messageID, requesterConnID string) error {
	if roomID == "" || messageID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	roomMsgs := r.messages[roomID]
	for i, msg := range roomMsgs {
		if msg.ID != messageID {
			continue
		}
		if msg.ConnID != requesterConnID {
			return domain.ErrNotAuthor
		}
		r.messages[roomID] = append(roomMsgs[:i], roomMsgs[i+1:]...)
		return nil
	}

	return domain.ErrMessageNotFound
}

func (r *messageRepository) DeleteByRoomID(ctx context.Context, roomID string) error {
	if roomID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	delete(r.messages, roomID)
	r.mu.Unlock()

	return nil
}

func (r *messageRepository) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for roomID, roomMsgs := range r.messages {
		// Messages are appended in order, find the first one to keep.
		keep := len(roomMsgs)
		for i, msg := range roomMsgs {
			if msg.CreatedAt.After(cutoff) {
				keep = i
				break
			}
		}
		if keep == 0 {
			continue
		}

		removed += keep
		if keep == len(roomMsgs) {
			delete(r.messages, roomID)
			continue
		}
		r.messages[roomID] = append([]*domain.Message(nil), roomMsgs[keep:]...)
	}

	return removed, nil
}

func (r *messageRepository) CountByRoomID(ctx context.Context, roomID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.messages[roomID]), nil
}
