package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/aoyamagallery/backend/internal/domain"
)

func seedCatalog(t *testing.T) *ArtworkRepository {
	t.Helper()
	repo := NewArtworkRepository()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo.Seed(domain.Artwork{Title: "Sunset over the Bay", IsFeatured: true, CreatedAt: base, UpdatedAt: base})
	repo.Seed(domain.Artwork{Title: "Winter Pines", IsSold: true, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)})
	repo.Seed(domain.Artwork{Title: "Harbor Lights", CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)})

	return repo
}

func TestArtworkRepositoryFindAll(t *testing.T) {
	repo := seedCatalog(t)
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name       string
		filter     domain.ArtworkFilter
		wantTitles []string
	}{
		{
			name:       "no filter returns everything newest first",
			filter:     domain.ArtworkFilter{},
			wantTitles: []string{"Harbor Lights", "Winter Pines", "Sunset over the Bay"},
		},
		{
			name:       "featured only",
			filter:     domain.ArtworkFilter{Featured: boolPtr(true)},
			wantTitles: []string{"Sunset over the Bay"},
		},
		{
			name:       "available only",
			filter:     domain.ArtworkFilter{Sold: boolPtr(false)},
			wantTitles: []string{"Harbor Lights", "Sunset over the Bay"},
		},
		{
			name:       "filters combine conjunctively",
			filter:     domain.ArtworkFilter{Featured: boolPtr(true), Sold: boolPtr(true)},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindAll(tt.filter)
			if err != nil {
				t.Fatalf("FindAll: %v", err)
			}
			if got == nil {
				t.Fatal("expected an empty slice, got nil")
			}
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("got %d artworks, want %d", len(got), len(tt.wantTitles))
			}
			for i, want := range tt.wantTitles {
				if got[i].Title != want {
					t.Errorf("position %d: got %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestArtworkRepositoryFindByID(t *testing.T) {
	repo := seedCatalog(t)

	artwork, err := repo.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if artwork.Title != "Sunset over the Bay" {
		t.Errorf("got title %q, want %q", artwork.Title, "Sunset over the Bay")
	}

	if _, err := repo.FindByID(999); !errors.Is(err, domain.ErrArtworkNotFound) {
		t.Errorf("got %v, want ErrArtworkNotFound", err)
	}

	title, err := repo.FindTitleByID(3)
	if err != nil {
		t.Fatalf("FindTitleByID: %v", err)
	}
	if title != "Harbor Lights" {
		t.Errorf("got title %q, want %q", title, "Harbor Lights")
	}
	if _, err := repo.FindTitleByID(999); !errors.Is(err, domain.ErrArtworkNotFound) {
		t.Errorf("got %v, want ErrArtworkNotFound", err)
	}
}

func TestArtworkRepositoryMarkSold(t *testing.T) {
	repo := seedCatalog(t)

	updated, err := repo.MarkSold(1)
	if err != nil {
		t.Fatalf("MarkSold: %v", err)
	}
	if !updated.IsSold {
		t.Error("expected IsSold to be true")
	}
	if updated.IsFeatured {
		t.Error("expected IsFeatured to drop with the sale")
	}

	stored, err := repo.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID after MarkSold: %v", err)
	}
	if !stored.IsSold || stored.IsFeatured {
		t.Error("expected the stored record to reflect the sale")
	}

	if _, err := repo.MarkSold(999); !errors.Is(err, domain.ErrArtworkNotFound) {
		t.Errorf("got %v, want ErrArtworkNotFound", err)
	}
}
