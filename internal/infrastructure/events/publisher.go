package events

import (
	"context"
	"encoding/json"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/contracts"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/messaging"
)

// Publisher emits audit events for room and game lifecycle changes.
// Implementations must not block hub processing on broker slowness.
type Publisher interface {
	RoomCreated(ctx context.Context, room *domain.Room)
	RoomExpired(ctx context.Context, room *domain.Room)
	MemberJoined(ctx context.Context, roomID, username, role string)
	MemberLeft(ctx context.Context, roomID, username string)
	GameFinished(ctx context.Context, roomID, game, winner string)
}

// NopPublisher drops all events. Used when messaging is disabled.
type NopPublisher struct{}

func (NopPublisher) RoomCreated(context.Context, *domain.Room)           {}
func (NopPublisher) RoomExpired(context.Context, *domain.Room)           {}
func (NopPublisher) MemberJoined(context.Context, string, string, string) {}
func (NopPublisher) MemberLeft(context.Context, string, string)           {}
func (NopPublisher) GameFinished(context.Context, string, string, string) {}

type AuditPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewAuditPublisher(rabbitmq *messaging.RabbitMQ) *AuditPublisher {
	return &AuditPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *AuditPublisher) publish(ctx context.Context, routingKey, actor string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	// Best effort, audit loss must never break chat traffic.
	_ = p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		Actor: actor,
		Data:  data,
	})
}

func (p *AuditPublisher) RoomCreated(ctx context.Context, room *domain.Room) {
	p.publish(ctx, contracts.EventRoomCreated, room.Name, messaging.RoomEventData{
		RoomID:   room.ID,
		RoomName: room.Name,
		Kind:     string(room.Kind),
	})
}

func (p *AuditPublisher) RoomExpired(ctx context.Context, room *domain.Room) {
	p.publish(ctx, contracts.EventRoomExpired, room.Name, messaging.RoomEventData{
		RoomID:   room.ID,
		RoomName: room.Name,
		Kind:     string(room.Kind),
	})
}

func (p *AuditPublisher) MemberJoined(ctx context.Context, roomID, username, role string) {
	p.publish(ctx, contracts.EventMemberJoined, username, messaging.MemberEventData{
		RoomID:   roomID,
		Username: username,
		Role:     role,
	})
}

func (p *AuditPublisher) MemberLeft(ctx context.Context, roomID, username string) {
	p.publish(ctx, contracts.EventMemberLeft, username, messaging.MemberEventData{
		RoomID:   roomID,
		Username: username,
	})
}

func (p *AuditPublisher) GameFinished(ctx context.Context, roomID, game, winner string) {
	p.publish(ctx, contracts.EventGameFinished, winner, messaging.GameEventData{
		RoomID: roomID,
		Game:   game,
		Winner: winner,
	})
}
