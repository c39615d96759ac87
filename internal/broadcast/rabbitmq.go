package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/pyramide/event-api/internal/config"
)

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQ(conf *config.RabbitMQConfig) (*RabbitMQ, error) {
	conn, err := amqp.Dial(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}

	q, err := channel.QueueDeclare(
		conf.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{"x-queue-mode": "lazy"},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("channel.QueueDeclare -> %w", err)
	}

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
		queue:   q,
	}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, jobs []Job) error {
	for _, job := range jobs {
		body, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}

		err = r.channel.PublishWithContext(ctx,
			"",           // exchange
			r.queue.Name, // routing key
			false,        // mandatory
			false,        // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				Body:         body,
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
			},
		)
		if err != nil {
			return fmt.Errorf("r.channel.PublishWithContext -> %w", err)
		}
	}

	return nil
}

// Consume delivers one message at a time to handler. A failed message is
// requeued once and dropped after its second failure.
func (r *RabbitMQ) Consume(ctx context.Context, handler Handler) error {
	if err := r.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("r.channel.Qos -> %w", err)
	}

	msgs, err := r.channel.Consume(
		r.queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("r.channel.Consume -> %w", err)
	}

	go r.handleMessages(ctx, msgs, handler)

	return nil
}

func (r *RabbitMQ) handleMessages(ctx context.Context, msgs <-chan amqp.Delivery, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			var job Job
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				zap.L().Error("broadcast job undecodable", zap.Error(err))
				_ = msg.Nack(false, false)
				continue
			}

			if err := handler(ctx, job); err != nil {
				zap.L().Warn("broadcast job failed",
					zap.Uint("message_id", job.MessageID),
					zap.Bool("redelivered", msg.Redelivered),
					zap.Error(err),
				)
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

func (r *RabbitMQ) Close() error {
	var errs []error
	if r.channel != nil {
		errs = append(errs, r.channel.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}

	return errors.Join(errs...)
}
