package rooms

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/hub"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/json"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/validate"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

type Handler struct {
	hub *hub.Hub
}

func NewHandler(h *hub.Hub) *Handler {
	return &Handler{hub: h}
}

func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validate.RoomName()(req.Name); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	kind := domain.RoomKind(req.Kind)
	if kind == "" {
		kind = domain.RoomChat
	}
	if kind != domain.RoomChat && kind != domain.RoomFun {
		json.WriteBadRequestError(w, "kind must be chat or funroom")
		return
	}

	room, err := h.hub.CreateRoom(r.Context(), req.Name, kind, req.Password)
	if err != nil {
		json.WriteDomainError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, createRoomResponse{
		RoomID:      room.ID,
		Name:        room.Name,
		Kind:        string(room.Kind),
		HasPassword: room.HasPassword(),
		CreatedAt:   room.CreatedAt,
	})
}

func (h *Handler) ListChatRoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.hub.ListChatRooms(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	json.Write(w, http.StatusOK, rooms)
}

func (h *Handler) ListFunroomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.hub.ListFunrooms(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	json.Write(w, http.StatusOK, rooms)
}

// ListJoinableFunroomsHandler lists funrooms that have exactly one
// player, so a match can start as soon as the caller joins.
func (h *Handler) ListJoinableFunroomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.hub.ListJoinableFunrooms(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	json.Write(w, http.StatusOK, rooms)
}

// JoinRoomHandler upgrades to a websocket and attaches the connection
// to the room. Join errors are reported over the socket, which is the
// only channel the client has after the upgrade.
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	username := r.URL.Query().Get("username")
	if err := validate.Username()(username); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	password := r.URL.Query().Get("password")

	conn, err := ws.Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed for room %s: %v", roomID, err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), roomID, username)

	if err := h.hub.Join(r.Context(), client, client.ID, roomID, username, password); err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			msg = "Room not found"
		case errors.Is(err, domain.ErrWrongPassword):
			msg = "Wrong password"
		default:
			msg = "Failed to join room"
		}
		_ = conn.WriteJSON(ws.NewError(roomID, msg))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump(h.hub)
}
