// Package queue_publisher publishes domain events to RabbitMQ.
// Errors are logged and returned so callers on the request path can
// ignore a broker outage without failing the request.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/sportsconnect/sportsconnect-api/internal/queue"
)

// PublishReservationEvent sends one ReservationEvent to the
// reservation event queue.  Broker address and queue declaration are
// shared with the consumer; messages are persistent so they survive
// broker restarts.  A fresh connection per publish keeps the function
// free of shared mutable state at the cost of a dial, which is
// acceptable at reservation-lifecycle volume.
func PublishReservationEvent(ctx context.Context, event q.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("queue-publisher: marshal event: %v", err)
		return err
	}

	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("queue-publisher: dial broker: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("queue-publisher: open channel: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := q.DeclareReservationQueue(ch); err != nil {
		log.Printf("queue-publisher: declare queue: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", q.ReservationQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Printf("queue-publisher: publish: %v", err)
		return err
	}
	return nil
}
