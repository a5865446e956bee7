// Package catalog orchestrates read access to the artwork catalog and the
// sold-marking state change.
package catalog

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/domain"
	"github.com/aoyamagallery/backend/internal/messaging/kafka"
	"github.com/aoyamagallery/backend/internal/metrics"
)

// Service exposes catalog operations on top of the artwork repository.
// Stores signal absence; this layer decides when absence is a reportable
// failure and attaches the requested id.
type Service struct {
	artworks  domain.ArtworkRepository
	publisher domain.EventPublisher
	metrics   *metrics.GalleryMetrics
	logger    *log.Entry
}

// NewService constructs the catalog service. publisher and m may be nil.
func NewService(artworks domain.ArtworkRepository, publisher domain.EventPublisher, m *metrics.GalleryMetrics, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{
		artworks:  artworks,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// GetAll lists artworks. Filters combine conjunctively; an empty result is a
// valid, empty listing.
func (s *Service) GetAll(filter domain.ArtworkFilter) ([]domain.Artwork, error) {
	return s.artworks.FindAll(filter)
}

// GetFeatured lists the artworks currently on the featured page.
func (s *Service) GetFeatured() ([]domain.Artwork, error) {
	featured := true
	return s.artworks.FindAll(domain.ArtworkFilter{Featured: &featured})
}

// GetAvailable lists the artworks that can still be ordered.
func (s *Service) GetAvailable() ([]domain.Artwork, error) {
	sold := false
	return s.artworks.FindAll(domain.ArtworkFilter{Sold: &sold})
}

// GetByID returns one artwork. A lookup for display is expected to succeed,
// so the store's absent signal becomes a not-found failure carrying the id.
func (s *Service) GetByID(id int64) (domain.Artwork, error) {
	artwork, err := s.artworks.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			return domain.Artwork{}, fmt.Errorf("artwork %d: %w", id, domain.ErrArtworkNotFound)
		}
		return domain.Artwork{}, err
	}
	return artwork, nil
}

// GetTitleByID returns only the artwork title, for callers that need no
// other field.
func (s *Service) GetTitleByID(id int64) (string, error) {
	title, err := s.artworks.FindTitleByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			return "", fmt.Errorf("artwork %d: %w", id, domain.ErrArtworkNotFound)
		}
		return "", err
	}
	return title, nil
}

// MarkSold marks an artwork as sold, which also removes it from the featured
// list in the same state change.
func (s *Service) MarkSold(id int64) (domain.Artwork, error) {
	artwork, err := s.artworks.MarkSold(id)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			return domain.Artwork{}, fmt.Errorf("artwork %d: %w", id, domain.ErrArtworkNotFound)
		}
		return domain.Artwork{}, err
	}

	s.metrics.ArtworkSold()
	s.publishSold(artwork)

	return artwork, nil
}

// publishSold emits artwork.sold best-effort: a broker problem must not fail
// a state change that is already committed.
func (s *Service) publishSold(artwork domain.Artwork) {
	if s.publisher == nil {
		return
	}

	event := kafka.NewArtworkSoldEvent(artwork.ID, artwork.Title)
	if err := s.publisher.PublishEvent(kafka.TopicArtworkEvents, fmt.Sprintf("artwork-%d", artwork.ID), event); err != nil {
		s.logger.WithError(err).WithField("artwork_id", artwork.ID).Warn("failed to publish artwork.sold event")
	}
}
