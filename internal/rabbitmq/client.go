package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tenerify/tenerify/internal/config"
	"github.com/tenerify/tenerify/internal/messaging/payloads"
)

// Client is the RabbitMQ connection used for article-restructure jobs. It
// implements both ports.StructureJobPublisher and ports.StructureJobConsumer.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient connects to RabbitMQ and declares the job queue. Declaring is
// idempotent: an existing queue is left untouched.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)

	return &Client{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}

// PublishStructureRequest enqueues a restructure job.
func (c *Client) PublishStructureRequest(ctx context.Context, payload payloads.ArticleStructurePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.Info("structure job published", "queue", c.queue.Name, "article_id", payload.ArticleID)
	return nil
}

// StartConsumingStructureRequests consumes jobs until the context is
// cancelled. Messages are acked manually; handler failures requeue the
// message, unmarshal failures drop it to avoid a poison-message loop.
func (c *Client) StartConsumingStructureRequests(ctx context.Context, handler func(context.Context, payloads.ArticleStructurePayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.ArticleStructurePayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("failed to unmarshal message", "error", err, "body", string(msg.Body))
					if nackErr := msg.Nack(false, false); nackErr != nil {
						c.logger.Error("failed to nack message", "error", nackErr)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("failed to process message", "article_id", payload.ArticleID, "error", err)
					if nackErr := msg.Nack(false, true); nackErr != nil {
						c.logger.Error("failed to nack message", "error", nackErr)
					}
				} else {
					if ackErr := msg.Ack(false); ackErr != nil {
						c.logger.Error("failed to ack message", "error", ackErr)
					}
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}
