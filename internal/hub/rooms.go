package hub

import (
	"context"
	"sort"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
)

// CreateRoom registers a new room. Hashing happens on the caller's
// goroutine; the repository is safe for concurrent use so no hub
// command is needed.
func (h *Hub) CreateRoom(ctx context.Context, name string, kind domain.RoomKind, pass string) (*domain.Room, error) {
	hash, err := h.hasher.Hash(pass)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	room, err := domain.NewRoom(name, kind, hash)
	if err != nil {
		return nil, err
	}
	if err := h.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	h.metrics.ActiveRooms.WithLabelValues(string(kind)).Inc()
	h.publisher.RoomCreated(ctx, room)
	h.log.Info(logging.Room, logging.Lifecycle, "room created", map[logging.ExtraKey]any{
		logging.RoomId: room.ID,
	})

	return room, nil
}

// SeedLobby creates the permanent lobby room if it does not exist yet.
func (h *Hub) SeedLobby(ctx context.Context, name string) error {
	lobby := &domain.Room{
		ID:        domain.LobbyID,
		Name:      name,
		Kind:      domain.RoomChat,
		CreatedAt: h.now(),
	}
	err := h.rooms.Create(ctx, lobby)
	if err == domain.ErrRoomExists {
		return nil
	}
	if err == nil {
		h.metrics.ActiveRooms.WithLabelValues(string(domain.RoomChat)).Inc()
	}
	return err
}

func (h *Hub) ListChatRooms(ctx context.Context) ([]domain.ChatRoomSummary, error) {
	rooms, err := h.rooms.List(ctx, domain.RoomChat)
	if err != nil {
		return nil, err
	}

	var out []domain.ChatRoomSummary
	h.doWait(func() {
		out = make([]domain.ChatRoomSummary, 0, len(rooms))
		for _, r := range rooms {
			out = append(out, domain.ChatRoomSummary{
				ID:          r.ID,
				Name:        r.Name,
				MemberCount: len(h.members[r.ID]),
			})
		}
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (h *Hub) ListFunrooms(ctx context.Context) ([]domain.FunroomSummary, error) {
	rooms, err := h.rooms.List(ctx, domain.RoomFun)
	if err != nil {
		return nil, err
	}

	var out []domain.FunroomSummary
	h.doWait(func() {
		out = make([]domain.FunroomSummary, 0, len(rooms))
		for _, r := range rooms {
			players, spectators := 0, 0
			for _, m := range h.members[r.ID] {
				if m.session.Role == domain.RolePlayer {
					players++
				} else {
					spectators++
				}
			}
			out = append(out, domain.FunroomSummary{
				ID:             r.ID,
				Name:           r.Name,
				PlayerCount:    players,
				SpectatorCount: spectators,
			})
		}
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListJoinableFunrooms returns funrooms waiting on a second player.
func (h *Hub) ListJoinableFunrooms(ctx context.Context) ([]domain.FunroomSummary, error) {
	all, err := h.ListFunrooms(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.FunroomSummary, 0, len(all))
	for _, f := range all {
		if f.PlayerCount == 1 {
			out = append(out, f)
		}
	}
	return out, nil
}

// sweep runs on the janitor tick, inside the hub goroutine. It drops
// expired messages and deletes rooms that are empty, message-less and
// past their TTL. The lobby is exempt.
func (h *Hub) sweep(ctx context.Context) {
	now := h.now()

	removed, err := h.messages.Sweep(ctx, now.Add(-h.cfg.MessageTTL))
	if err != nil {
		h.log.Error(logging.Room, logging.Sweep, "message sweep failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	} else if removed > 0 {
		h.log.Infof("swept %d expired messages", removed)
	}

	rooms, err := h.rooms.List(ctx, "")
	if err != nil {
		return
	}

	cutoff := now.Add(-h.cfg.RoomTTL)
	for _, r := range rooms {
		if r.IsLobby() {
			continue
		}
		if len(h.members[r.ID]) > 0 {
			continue
		}
		if count, err := h.messages.CountByRoomID(ctx, r.ID); err != nil || count > 0 {
			continue
		}
		if r.CreatedAt.After(cutoff) {
			continue
		}

		if err := h.rooms.Delete(ctx, r.ID); err != nil {
			continue
		}
		_ = h.messages.DeleteByRoomID(ctx, r.ID)
		if f, ok := h.funrooms[r.ID]; ok {
			h.stopTicker(f)
			delete(h.funrooms, r.ID)
		}

		h.metrics.ActiveRooms.WithLabelValues(string(r.Kind)).Dec()
		h.publisher.RoomExpired(ctx, r)
		h.log.Info(logging.Room, logging.Sweep, "room expired", map[logging.ExtraKey]any{
			logging.RoomId: r.ID,
		})
	}
}
