package domain

// EventPublisher publishes domain events to a message broker. A nil publisher
// in a service means publishing is disabled.
type EventPublisher interface {
	PublishEvent(topic string, key string, event any) error
}
