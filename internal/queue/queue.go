package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/feedlens/internal/util"

	"github.com/rabbitmq/amqp091-go"
)

const (
	// ReportQueue carries report jobs from the API to the workers.
	ReportQueue = "report_queue"

	retrySuffix = "_retry"
	dlqSuffix   = "_dlq"

	// retryTTL is how long a failed message waits in the retry queue before
	// it is dead-lettered back onto its work queue.
	retryTTL = 10 * time.Second
)

// Channel is the part of an AMQP channel used for publishing.
// *amqp091.Channel implements it.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Init dials RabbitMQ using the RABBITMQ_* environment variables.
func Init() (*amqp091.Connection, error) {
	user := util.GetEnvString("RABBITMQ_USER", "guest")
	pass := util.GetEnvString("RABBITMQ_PASSWORD", "guest")
	host := util.GetEnvString("RABBITMQ_HOST", "localhost")
	port := util.GetEnvString("RABBITMQ_PORT", "5672")

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// SetupQueues declares every work queue together with its dead letter
// queue and its retry queue.
func SetupQueues(ch *amqp091.Channel, queueNames []string) error {
	for _, name := range queueNames {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}

		dlqName := name + dlqSuffix
		_, err = ch.QueueDeclare(
			dlqName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", dlqName, err)
		}

		retryName := name + retrySuffix
		_, err = ch.QueueDeclare(
			retryName,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(retryTTL.Milliseconds()),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", retryName, err)
		}
	}

	return nil
}

// PublishFIFO publishes a persistent message to queueName on the default
// exchange.
func PublishFIFO(ctx context.Context, ch Channel, queueName string, data []byte) error {
	return publish(ctx, ch, queueName, data, nil)
}

func publish(ctx context.Context, ch Channel, queueName string, data []byte, headers amqp091.Table) error {
	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		Headers:      headers,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}
	return nil
}
