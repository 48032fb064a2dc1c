package ports

import "context"

// EventPublisher publica eventos de dominio hacia el broker. La
// publicación es best-effort desde el punto de vista del flujo CRUD:
// una falla se registra pero no revierte la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}
