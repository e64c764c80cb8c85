package domain

type Role string

const (
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
	RoleChat      Role = "chat"
)

// Session is the per-connection state the hub tracks, keyed by
// connection id. It is deliberately not attached to the transport
// object so the core stays decoupled from the websocket library.
type Session struct {
	ConnID   string
	Username string
	RoomID   string
	Role     Role
}

func (s *Session) InRoom() bool {
	return s.RoomID != ""
}
