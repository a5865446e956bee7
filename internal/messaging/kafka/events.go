package kafka

import "time"

// EventType identifies the kind of event on the wire.
type EventType string

const (
	// EventTypeOrderCreated is published after an order row is committed.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeArtworkSold is published after an artwork is marked sold.
	EventTypeArtworkSold EventType = "artwork.sold"
)

// Kafka topics.
const (
	TopicOrderEvents   = "gallery.order.events"
	TopicArtworkEvents = "gallery.artwork.events"
)

// OrderEvent is the JSON payload for order lifecycle events.
type OrderEvent struct {
	EventType    EventType `json:"event_type"`
	OrderID      int64     `json:"order_id"`
	ArtworkID    int64     `json:"artwork_id"`
	ArtworkTitle string    `json:"artwork_title"`
	CustomerName string    `json:"customer_name"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewOrderCreatedEvent builds the payload for a freshly committed order.
func NewOrderCreatedEvent(orderID, artworkID int64, artworkTitle, customerName string) OrderEvent {
	return OrderEvent{
		EventType:    EventTypeOrderCreated,
		OrderID:      orderID,
		ArtworkID:    artworkID,
		ArtworkTitle: artworkTitle,
		CustomerName: customerName,
		Timestamp:    time.Now().UTC(),
	}
}

// ArtworkEvent is the JSON payload for artwork lifecycle events.
type ArtworkEvent struct {
	EventType EventType `json:"event_type"`
	ArtworkID int64     `json:"artwork_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// NewArtworkSoldEvent builds the payload for a sold-marking state change.
func NewArtworkSoldEvent(artworkID int64, title string) ArtworkEvent {
	return ArtworkEvent{
		EventType: EventTypeArtworkSold,
		ArtworkID: artworkID,
		Title:     title,
		Timestamp: time.Now().UTC(),
	}
}
