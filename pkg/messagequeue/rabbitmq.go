package messagequeue

import (
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

// RabbitMQService implements MessageQueue using RabbitMQ.
type RabbitMQService struct {
	conn    *amqp.Connection
	channel *amqp.Channel

	// done releases consumer bridge goroutines whose reader went away.
	done      chan struct{}
	closeOnce sync.Once
}

// RabbitMQConfig contains options for creating a new RabbitMQService.
type RabbitMQConfig struct {
	URL string
}

// NewRabbitMQService dials the broker and opens a channel.
func NewRabbitMQService(cfg RabbitMQConfig) (MessageQueue, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return &RabbitMQService{conn: conn, channel: ch, done: make(chan struct{})}, nil
}

// Publish sends a message to a durable queue, declaring it if needed.
func (s *RabbitMQService) Publish(queueName string, body []byte) error {
	q, err := s.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	err = s.channel.Publish(
		"",     // default exchange
		q.Name, // routing key
		false,  // mandatory
		false,  // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queueName, err)
	}
	return nil
}

// Consume returns a channel of message bodies from a durable queue.
// Messages are auto-acknowledged; a consumer crash drops in-flight ones.
func (s *RabbitMQService) Consume(queueName string) (<-chan []byte, error) {
	q, err := s.channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	deliveries, err := s.channel.Consume(
		q.Name,
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume from queue %s: %w", queueName, err)
	}

	out := make(chan []byte)
	go bridgeDeliveries(deliveries, out, s.done)
	return out, nil
}

// bridgeDeliveries forwards message bodies until the deliveries channel
// closes or done is signaled. The done path keeps a blocked send from
// leaking the goroutine after the consumer stopped reading.
func bridgeDeliveries(deliveries <-chan amqp.Delivery, out chan<- []byte, done <-chan struct{}) {
	defer close(out)
	for d := range deliveries {
		select {
		case out <- d.Body:
		case <-done:
			return
		}
	}
}

// Close releases the channel and connection and unblocks any consumer
// bridge goroutines.
func (s *RabbitMQService) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	if err := s.channel.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
