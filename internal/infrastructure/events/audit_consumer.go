package events

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/contracts"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/messaging"
)

type auditConsumer struct {
	rabbitmq *messaging.RabbitMQ
	log      logging.Logger
}

func NewAuditConsumer(rabbitmq *messaging.RabbitMQ, log logging.Logger) *auditConsumer {
	return &auditConsumer{
		rabbitmq: rabbitmq,
		log:      log,
	}
}

// Listen drains the audit queue and writes each event to the structured log.
func (c *auditConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.AuditQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			return err
		}

		c.log.Info(logging.RabbitMQ, logging.ExternalService, "audit event", map[logging.ExtraKey]any{
			"routingKey":     msg.RoutingKey,
			logging.Username: message.Actor,
		})

		return nil
	})
}
