package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/aoyamagallery/backend/internal/domain"
)

// ArtworkRepository is an in-memory ArtworkRepository for local development
// and tests. It mirrors the postgres contracts: newest-first ordering, empty
// slice for empty listings, sentinel errors for absence.
type ArtworkRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.Artwork
	nextID int64
}

// NewArtworkRepository returns an empty in-memory artwork store.
func NewArtworkRepository() *ArtworkRepository {
	return &ArtworkRepository{
		items: make(map[int64]domain.Artwork),
	}
}

// Seed inserts or replaces an artwork, assigning the storage-owned fields
// when they are unset. It stands in for the out-of-scope create path.
func (r *ArtworkRepository) Seed(artwork domain.Artwork) domain.Artwork {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artwork.ID == 0 {
		r.nextID++
		artwork.ID = r.nextID
	} else if artwork.ID > r.nextID {
		r.nextID = artwork.ID
	}
	now := time.Now().UTC()
	if artwork.CreatedAt.IsZero() {
		artwork.CreatedAt = now
	}
	if artwork.UpdatedAt.IsZero() {
		artwork.UpdatedAt = now
	}

	r.items[artwork.ID] = artwork
	return artwork
}

// FindAll returns artworks matching every set filter field, newest first.
func (r *ArtworkRepository) FindAll(filter domain.ArtworkFilter) ([]domain.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Artwork, 0, len(r.items))
	for _, artwork := range r.items {
		if filter.Featured != nil && artwork.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Sold != nil && artwork.IsSold != *filter.Sold {
			continue
		}
		result = append(result, artwork)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// FindByID returns the artwork or ErrArtworkNotFound.
func (r *ArtworkRepository) FindByID(id int64) (domain.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artwork, ok := r.items[id]
	if !ok {
		return domain.Artwork{}, domain.ErrArtworkNotFound
	}
	return artwork, nil
}

// FindTitleByID returns only the title, or ErrArtworkNotFound.
func (r *ArtworkRepository) FindTitleByID(id int64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artwork, ok := r.items[id]
	if !ok {
		return "", domain.ErrArtworkNotFound
	}
	return artwork.Title, nil
}

// MarkSold applies the sold-marking state change and returns the updated record.
func (r *ArtworkRepository) MarkSold(id int64) (domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artwork, ok := r.items[id]
	if !ok {
		return domain.Artwork{}, domain.ErrArtworkNotFound
	}

	artwork.MarkAsSold()
	artwork.UpdatedAt = time.Now().UTC()
	r.items[id] = artwork
	return artwork, nil
}

var _ domain.ArtworkRepository = (*ArtworkRepository)(nil)
