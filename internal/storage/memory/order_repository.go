package memory

import (
	"sync"
	"time"

	"github.com/aoyamagallery/backend/internal/domain"
)

// OrderRepository is an in-memory OrderRepository. It holds a reference to
// the artwork store so the sold-state guard inside Create behaves like the
// row lock in the postgres implementation.
type OrderRepository struct {
	mu       sync.Mutex
	artworks *ArtworkRepository
	items    map[int64]domain.Order
	nextID   int64
}

// NewOrderRepository returns an empty in-memory order store backed by artworks.
func NewOrderRepository(artworks *ArtworkRepository) *OrderRepository {
	return &OrderRepository{
		artworks: artworks,
		items:    make(map[int64]domain.Order),
	}
}

// Create persists the order with artworkTitle as the immutable snapshot,
// assigning the id and creation timestamp. The referenced artwork must still
// exist and be unsold.
func (r *OrderRepository) Create(order domain.Order, artworkTitle string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artwork, err := r.artworks.FindByID(order.ArtworkID)
	if err != nil {
		return domain.Order{}, err
	}
	if artwork.IsSold {
		return domain.Order{}, domain.ErrArtworkSold
	}

	r.nextID++
	order.ID = r.nextID
	order.ArtworkTitle = artworkTitle
	order.CreatedAt = time.Now().UTC()

	r.items[order.ID] = order
	return order, nil
}

// FindByID returns the order or ErrOrderNotFound.
func (r *OrderRepository) FindByID(id int64) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// Count reports how many orders are stored. Test helper.
func (r *OrderRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
