package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	Actor string `json:"actor"`
	Data  []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventRoomCreated  = "room.created"
	EventRoomExpired  = "room.expired"
	EventMemberJoined = "member.joined"
	EventMemberLeft   = "member.left"
	EventGameFinished = "game.finished"
)
