package queue

import (
	"context"

	"github.com/OFFIS-RIT/feedlens/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// MaxRetries is how often a message is retried before it is dead-lettered.
const MaxRetries = 10

const retriesHeader = "x-retries"

// Retries reads the retry count a message carries. Counts written by this
// package come back as int64 or int32 depending on the broker round trip.
func Retries(msg amqp091.Delivery) int {
	switch v := msg.Headers[retriesHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// HandleProcessingError moves a failed message to the retry queue of
// queueName, or to its dead letter queue once MaxRetries is reached. The
// original delivery is acked when the republish succeeds and requeued
// otherwise. It reports whether the message was dead-lettered.
func HandleProcessingError(ctx context.Context, ch Channel, msg amqp091.Delivery, queueName string) bool {
	retries := Retries(msg)

	headers := amqp091.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}

	if retries >= MaxRetries {
		return DeadLetter(ctx, ch, msg, queueName)
	}

	retryName := queueName + retrySuffix
	headers[retriesHeader] = int32(retries + 1)

	if err := publish(ctx, ch, retryName, msg.Body, headers); err != nil {
		logger.Error("[Queue] Failed to publish to retry queue", "retry_queue", retryName, "err", err)
		_ = msg.Nack(false, true)
		return false
	}
	logger.Info("[Queue] Message scheduled for retry", "queue", queueName, "retry", retries+1)
	_ = msg.Ack(false)
	return false
}

// DeadLetter moves a message to the dead letter queue of queueName without
// further retries.
func DeadLetter(ctx context.Context, ch Channel, msg amqp091.Delivery, queueName string) bool {
	dlqName := queueName + dlqSuffix
	logger.Warn("[Queue] Sending message to DLQ", "dlq", dlqName)

	if err := publish(ctx, ch, dlqName, msg.Body, msg.Headers); err != nil {
		logger.Error("[Queue] Failed to publish to DLQ", "dlq", dlqName, "err", err)
		_ = msg.Nack(false, true)
		return false
	}
	_ = msg.Ack(false)
	return true
}
