package ws

// Client to server events.
const (
	EventChatMessage   = "chatMessage"
	EventTyping        = "typing"
	EventDeleteMessage = "deleteMessage"
	EventStartGame     = "startGame"
	EventPlayMove      = "playMove"
	EventPlayerInput   = "playerInput"
	EventPlayAgain     = "playAgain"
	EventLeaveRoom     = "leaveRoom"
)

// Server to client events.
const (
	EventInit           = "init"
	EventMessageDeleted = "messageDeleted"
	EventGameUpdated    = "gameUpdated"
	EventUserJoined     = "userJoined"
	EventUserLeft       = "userLeft"
	EventRoleAssigned   = "roleAssigned"
	EventGameStart      = "gameStart"
	EventSnakeState     = "snakeState"
	EventGameOver       = "gameOver"
	EventError          = "error"
)
