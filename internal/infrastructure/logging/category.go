package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	WebSocket       Category = "WebSocket"
	Room            Category = "Room"
	Game            Category = "Game"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Room
	Join      SubCategory = "Join"
	Leave     SubCategory = "Leave"
	Lifecycle SubCategory = "Lifecycle"
	Sweep     SubCategory = "Sweep"

	// Game
	Move SubCategory = "Move"
	Tick SubCategory = "Tick"

	// IO
	Upload  SubCategory = "Upload"
	Cleanup SubCategory = "Cleanup"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RoomId       ExtraKey = "RoomId"
	ConnId       ExtraKey = "ConnId"
	Username     ExtraKey = "Username"
	MessageId    ExtraKey = "MessageId"
	GameKind     ExtraKey = "GameKind"
	ErrorMessage ExtraKey = "ErrorMessage"
)
