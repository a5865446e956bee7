// Package order orchestrates order creation: field validation, artwork
// existence and sold checks, then the single write with the title snapshot.
package order

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/domain"
	"github.com/aoyamagallery/backend/internal/messaging/kafka"
	"github.com/aoyamagallery/backend/internal/metrics"
)

// Rejection reasons for metrics.
const (
	rejectReasonValidation      = "validation"
	rejectReasonArtworkNotFound = "artwork_not_found"
	rejectReasonArtworkSold     = "artwork_sold"
)

// CreateOrderInput carries the request fields for a new order.
type CreateOrderInput struct {
	ArtworkID    int64   `json:"artwork_id"`
	CustomerName string  `json:"customer_name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Message      *string `json:"message"`
}

// Service exposes order operations on top of the order and artwork repositories.
type Service struct {
	orders    domain.OrderRepository
	artworks  domain.ArtworkRepository
	publisher domain.EventPublisher
	metrics   *metrics.GalleryMetrics
	logger    *log.Entry
}

// NewService constructs the order service. publisher and m may be nil.
func NewService(orders domain.OrderRepository, artworks domain.ArtworkRepository, publisher domain.EventPublisher, m *metrics.GalleryMetrics, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		artworks:  artworks,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Create runs the full order workflow: build the record, validate every
// field at once, check the artwork exists and is not sold, then persist with
// the artwork's current title as the immutable snapshot. The persistence
// step is the only write and runs only after all checks pass.
//
// The sold and existence checks read the same artwork row whose title is
// snapshotted, and the repository re-checks the sold flag under a row lock
// inside the insert transaction, so a concurrent sale between check and
// insert is rejected rather than silently recorded.
func (s *Service) Create(input CreateOrderInput) (domain.Order, error) {
	order := domain.Order{
		ArtworkID:    input.ArtworkID,
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Message:      input.Message,
	}

	if violations := order.ValidateInvariants(); len(violations) > 0 {
		s.metrics.OrderRejected(rejectReasonValidation)
		return domain.Order{}, domain.NewValidationError(violations)
	}

	artwork, err := s.artworks.FindByID(order.ArtworkID)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			s.metrics.OrderRejected(rejectReasonArtworkNotFound)
			return domain.Order{}, fmt.Errorf("artwork %d: %w", order.ArtworkID, domain.ErrArtworkNotFound)
		}
		return domain.Order{}, err
	}
	if artwork.IsSold {
		s.metrics.OrderRejected(rejectReasonArtworkSold)
		return domain.Order{}, fmt.Errorf("artwork %d: %w", artwork.ID, domain.ErrArtworkSold)
	}

	created, err := s.orders.Create(order, artwork.Title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArtworkSold):
			// Lost the race against a concurrent sale.
			s.metrics.OrderRejected(rejectReasonArtworkSold)
			return domain.Order{}, fmt.Errorf("artwork %d: %w", order.ArtworkID, domain.ErrArtworkSold)
		case errors.Is(err, domain.ErrArtworkNotFound):
			s.metrics.OrderRejected(rejectReasonArtworkNotFound)
			return domain.Order{}, fmt.Errorf("artwork %d: %w", order.ArtworkID, domain.ErrArtworkNotFound)
		default:
			return domain.Order{}, err
		}
	}

	s.metrics.OrderCreated()
	s.logger.WithFields(log.Fields{
		"order_id":   created.ID,
		"artwork_id": created.ArtworkID,
	}).Info("order created")
	s.publishCreated(created)

	return created, nil
}

// GetByID returns one order, converting the store's absent signal into a
// not-found failure carrying the id.
func (s *Service) GetByID(id int64) (domain.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
		}
		return domain.Order{}, err
	}
	return order, nil
}

// publishCreated emits order.created best-effort after the commit.
func (s *Service) publishCreated(order domain.Order) {
	if s.publisher == nil {
		return
	}

	event := kafka.NewOrderCreatedEvent(order.ID, order.ArtworkID, order.ArtworkTitle, order.CustomerName)
	if err := s.publisher.PublishEvent(kafka.TopicOrderEvents, fmt.Sprintf("order-%d", order.ID), event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order.created event")
	}
}
