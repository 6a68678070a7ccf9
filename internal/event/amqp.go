package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"space-stem-quiz/internal/domain"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends completion events to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	log.Printf("event publisher ready on exchange %s", exchange)
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

func newPublisherWithChannel(ch channel, exchange string, now func() time.Time) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: now}
}

func (p *Publisher) Completed(ctx context.Context, summary domain.Summary) error {
	body, err := json.Marshal(Envelope{Type: TypeQuizCompleted, OccurredAt: p.now().UTC(), Payload: summary})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx,
		p.exchange,        // exchange
		TypeQuizCompleted, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now(),
			Body:         body,
			Headers: amqp.Table{
				"quiz_id": summary.QuizID,
				"user_id": summary.UserID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", TypeQuizCompleted, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
