package domain

// ArtworkRepository describes the artwork store. Lookups signal absence with
// ErrArtworkNotFound; they never translate absence into any other failure.
type ArtworkRepository interface {
	// FindAll returns artworks matching every set filter field, newest first.
	// An empty result is an empty slice, not an error.
	FindAll(filter ArtworkFilter) ([]Artwork, error)
	// FindByID returns the artwork or ErrArtworkNotFound.
	FindByID(id int64) (Artwork, error)
	// FindTitleByID returns only the title column, for callers that need no
	// other field, or ErrArtworkNotFound.
	FindTitleByID(id int64) (string, error)
	// MarkSold sets is_sold and clears is_featured in one state change and
	// returns the updated record, or ErrArtworkNotFound.
	MarkSold(id int64) (Artwork, error)
}

// OrderRepository describes the order store. Orders are insert-only.
type OrderRepository interface {
	// Create persists a new order using artworkTitle as the immutable
	// snapshot and returns it populated with the storage-assigned id and
	// creation timestamp. The write is rejected with ErrArtworkSold or
	// ErrArtworkNotFound if the referenced artwork was sold or removed
	// between the caller's check and the insert.
	Create(order Order, artworkTitle string) (Order, error)
	// FindByID returns the order or ErrOrderNotFound.
	FindByID(id int64) (Order, error)
}
