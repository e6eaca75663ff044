package rabbitmq

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"medmate/internal/core/domain/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const RECONNECT_DELAY = 3 * time.Second

// Connection redials the broker whenever the server drops it.
type Connection struct {
	*amqp.Connection
	url string
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	c := &Connection{Connection: conn, url: url, log: log}
	go c.watch()
	return c, nil
}

func (c *Connection) watch() {
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		c.Connection = redial(c.log, "connection", func() (*amqp.Connection, error) {
			return amqp.Dial(c.url)
		})
	}
}

// Channel opens a channel that is reopened until Close is called on it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go channel.watch(c)
	return channel, nil
}

type Channel struct {
	*amqp.Channel
	closed atomic.Bool
	log    logging.Logger
}

func (ch *Channel) watch(c *Connection) {
	for {
		reason, ok := <-ch.Channel.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			ch.closed.Store(true)
			return
		}
		ch.log.Warning(context.Background(), "RabbitMQ channel lost.", logging.Entry("reason", reason.Error()))
		ch.Channel = redial(ch.log, "channel", func() (*amqp.Channel, error) {
			return c.Connection.Channel()
		})
	}
}

// redial retries open until it succeeds.
func redial[T any](log logging.Logger, what string, open func() (T, error)) T {
	for {
		time.Sleep(RECONNECT_DELAY)
		v, err := open()
		if err == nil {
			log.Info(context.Background(), "RabbitMQ "+what+" restored.")
			return v
		}
		log.Error(context.Background(), "Could not restore RabbitMQ "+what+".", logging.Entry("err", err))
	}
}

func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if !ch.closed.CompareAndSwap(false, true) {
		return amqp.ErrClosed
	}
	return ch.Channel.Close()
}

// DeclareDirectQueue declares a durable direct exchange and a durable queue
// bound to it with the queue name as routing key.
func (ch *Channel) DeclareDirectQueue(exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("could not declare exchange %q: %w", exchange, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("could not declare queue %q: %w", queue, err)
	}
	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("could not bind queue %q to exchange %q: %w", queue, exchange, err)
	}
	return nil
}

// Consume delivers messages of queue with manual acknowledgment and
// resubscribes after the channel is restored. The stream ends once the
// channel is closed.
func (ch *Channel) Consume(queue string) <-chan amqp.Delivery {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for !ch.IsClosed() {
			d, err := ch.Channel.Consume(queue, "", false, false, false, false, nil)
			if err != nil {
				ch.log.Error(context.Background(), "Could not consume RabbitMQ queue.", logging.Entry("queue", queue), logging.Entry("err", err))
				time.Sleep(RECONNECT_DELAY)
				continue
			}
			for msg := range d {
				deliveries <- msg
			}
			// The closed flag is set by the watcher after the delivery stream ends.
			time.Sleep(RECONNECT_DELAY)
		}
		ch.log.Info(context.Background(), "RabbitMQ channel closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries
}
