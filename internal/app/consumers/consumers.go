package consumers

import (
	"context"

	"medmate/internal/app/deps"
	"medmate/internal/app/services"
	dl "medmate/internal/core/domain/logging"
	occurrencedue "medmate/internal/rabbitmq/consumers/occurrence_due"
)

func initOccurrenceDueConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqOccurrenceDueQueue
	if err := rabbitmqChannel.DeclareDirectQueue(deps.Config.RabbitmqOccurrenceExchange, queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	occurrenceDueConsumer := occurrencedue.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.NotifyOccurrence,
	)
	occurrenceDueConsumer.Consume()

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownOccurrenceDueConsumer := initOccurrenceDueConsumer(deps, services)

	return func() {
		shutdownOccurrenceDueConsumer()
	}
}
