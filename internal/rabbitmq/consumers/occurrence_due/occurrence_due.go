package occurrencedue

import (
	"context"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/services"
	notifyoccurrence "medmate/internal/core/services/notify_occurrence"
	"medmate/internal/rabbitmq"
	"medmate/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[notifyoccurrence.Input, notifyoccurrence.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[notifyoccurrence.Input, notifyoccurrence.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

// Consume handles deliveries in the background until the channel is closed.
func (c *Consumer) Consume() {
	deliveries := c.channel.Consume(c.queue)

	go func() {
		for delivery := range deliveries {
			handle(context.Background(), c.log, c.service, delivery.Body)
			c.Ack(delivery)
		}
	}()
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

// handle never fails: a message that cannot be delivered is logged and dropped.
func handle(
	ctx context.Context,
	log logging.Logger,
	service services.Service[notifyoccurrence.Input, notifyoccurrence.Result],
	body []byte,
) {
	message := &schema.Occurrence{}
	if err := message.Unmarshal(body); err != nil {
		log.Error(ctx, "Could not unmarshal occurrence.", logging.Entry("err", err), logging.Entry("body", string(body)))
		return
	}

	log.Info(ctx, "Got due occurrence.", logging.Entry("occurrence", message))
	_, err := service.Run(ctx, notifyoccurrence.Input{Occurrence: message.ToDomain()})
	if err != nil {
		log.Error(
			ctx,
			"Could not notify about occurrence, service returned an error.",
			logging.Entry("occurrence", message),
			logging.Entry("err", err),
		)
	}
}
