package messaging

const (
	AuditQueue      = "audit"
	DeadLetterQueue = "dead_letter_queue"
)

type RoomEventData struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Kind     string `json:"kind"`
}

type MemberEventData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type GameEventData struct {
	RoomID string `json:"roomId"`
	Game   string `json:"game"`
	Winner string `json:"winner,omitempty"`
}
