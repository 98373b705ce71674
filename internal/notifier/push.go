package notifier

import (
	"context"
	"encoding/json"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
	"github.com/billmind/go-bill-reminder/internal/shared/rabbitmq"
)

// PushNotifier publishes reminder events to the push gateway exchange. The
// device-facing gateway consumes them and delivers local notifications.
type PushNotifier struct {
	client   *rabbitmq.RabbitMQClient
	exchange string
	log      *logger.Logger
}

// NewPushNotifier declares the exchange and returns a publisher for it
func NewPushNotifier(client *rabbitmq.RabbitMQClient, exchange string, log *logger.Logger) (*PushNotifier, error) {
	if err := client.DeclareExchange(exchange); err != nil {
		return nil, err
	}
	return &PushNotifier{
		client:   client,
		exchange: exchange,
		log:      log,
	}, nil
}

// Publish emits one reminder event routed by user id
func (n *PushNotifier) Publish(ctx context.Context, event domain.ReminderEvent) Result {
	body, err := json.Marshal(event)
	if err != nil {
		return Fail(err)
	}

	routingKey := "reminder.user." + event.UserID
	if err := n.client.Publish(ctx, n.exchange, routingKey, body); err != nil {
		return Fail(err)
	}
	return Ok(routingKey)
}
