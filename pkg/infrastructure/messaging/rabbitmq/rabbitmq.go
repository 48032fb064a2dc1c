// pkg/infrastructure/messaging/rabbitmq/rabbitmq.go
package rabbitmq

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventBus representa la interfaz para publicar y consumir eventos
type EventBus interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Subscribe(routingKey string, handler func([]byte) error) error
	Close() error
}

// RabbitMQEventBus implementa EventBus con RabbitMQ
type RabbitMQEventBus struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	exchangeName string
	queueName    string

	mu        sync.Mutex
	handlers  map[string]func([]byte) error
	consuming bool
}

// NewRabbitMQEventBus crea una nueva instancia de RabbitMQEventBus
func NewRabbitMQEventBus(url, exchangeName, queueName string) (*RabbitMQEventBus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		exchangeName, // nombre
		"topic",      // tipo
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	_, err = channel.QueueDeclare(
		queueName, // nombre
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQEventBus{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		handlers:     make(map[string]func([]byte) error),
	}, nil
}

// Publish publica un evento en RabbitMQ
func (eb *RabbitMQEventBus) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return eb.channel.PublishWithContext(
		ctx,
		eb.exchangeName, // exchange
		routingKey,      // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Subscribe vincula la cola al routing key y registra su handler. La
// cola tiene un único consumidor que despacha por routing key; un
// handler que devuelve error reencola el mensaje.
func (eb *RabbitMQEventBus) Subscribe(routingKey string, handler func([]byte) error) error {
	err := eb.channel.QueueBind(
		eb.queueName,    // queue
		routingKey,      // routing key
		eb.exchangeName, // exchange
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return err
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[routingKey] = handler
	if eb.consuming {
		return nil
	}

	msgs, err := eb.channel.Consume(
		eb.queueName, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return err
	}
	eb.consuming = true

	go func() {
		for msg := range msgs {
			eb.mu.Lock()
			handler := eb.handlers[msg.RoutingKey]
			eb.mu.Unlock()

			if handler == nil {
				// Sin handler registrado no hay nada que reintentar
				log.Printf("Mensaje sin handler para %s, descartado", msg.RoutingKey)
				msg.Ack(false)
				continue
			}

			if err := handler(msg.Body); err != nil {
				log.Printf("Error procesando mensaje %s: %v", msg.RoutingKey, err)
				msg.Nack(false, true)
				continue
			}
			msg.Ack(false)
		}
	}()

	return nil
}

// Close cierra el canal y la conexión
func (eb *RabbitMQEventBus) Close() error {
	if err := eb.channel.Close(); err != nil {
		return err
	}
	return eb.conn.Close()
}
