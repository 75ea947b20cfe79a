package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// EventsQueue is the durable queue every domain event is published to.
const EventsQueue = "agritrack_events"

// Event is the envelope written to the queue.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
	log     logrus.FieldLogger
	now     func() time.Time
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the events queue.
func NewClient(cfg Config, log logrus.FieldLogger) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = EventsQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declare(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	log = log.WithField("queue", cfg.Queue)
	log.Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		log:     log,
		now:     time.Now,
	}, nil
}

func declare(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

// Close closes the channel and then the connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewEvent wraps payload in the queue envelope.
func NewEvent(eventType string, payload interface{}, at time.Time) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return json.Marshal(Event{Type: eventType, OccurredAt: at.UTC(), Data: data})
}

// PublishEvent sends one persistent JSON event to the configured queue.
func (c *Client) PublishEvent(ctx context.Context, eventType string, payload interface{}) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := c.now()
	body, err := NewEvent(eventType, payload, now)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    now,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	c.log.WithField("event", eventType).Debug("event published")
	return nil
}

// Handler processes one decoded event. A returned error requeues the delivery.
type Handler func(Event) error

// ConsumeEvents delivers every event on the queue to handler until ctx is done
// or the channel closes. Undecodable messages are dropped.
func (c *Client) ConsumeEvents(ctx context.Context, handler Handler) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"agritrack-events-logger",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.deliver(msg, handler)
			}
		}
	}()
	return nil
}

func (c *Client) deliver(msg amqp.Delivery, handler Handler) {
	log := c.log.WithField("delivery_tag", msg.DeliveryTag)

	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.WithError(err).Warn("dropping undecodable event")
		if err := msg.Nack(false, false); err != nil {
			log.WithError(err).Error("failed to nack message")
		}
		return
	}

	if err := handler(event); err != nil {
		log.WithError(err).WithField("event", event.Type).Warn("event handler failed, requeueing")
		if err := msg.Nack(false, true); err != nil {
			log.WithError(err).Error("failed to nack message")
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		log.WithError(err).Error("failed to ack message")
	}
}

// LogEvents returns a Handler that records each event on log.
func LogEvents(log logrus.FieldLogger) Handler {
	return func(e Event) error {
		log.WithFields(logrus.Fields{
			"event":       e.Type,
			"occurred_at": e.OccurredAt.Format(time.RFC3339),
		}).Info("event received")
		return nil
	}
}
