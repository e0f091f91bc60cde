// Package messagequeue provides publish/consume over a durable queue,
// currently backed by RabbitMQ.
package messagequeue

// MessageQueue publishes raw payloads to named queues and consumes them.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	Consume(queueName string) (<-chan []byte, error)
	Close() error
}
