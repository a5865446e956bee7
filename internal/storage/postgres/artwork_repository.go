package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aoyamagallery/backend/internal/domain"
)

const (
	opTimeout = 5 * time.Second

	artworkColumns = `id, title, description, image_url, price, size, medium, year,
		is_featured, is_sold, created_at, updated_at`
)

type artworkRepository struct {
	store *Store
}

// NewArtworkRepository creates the PostgreSQL implementation of ArtworkRepository.
func NewArtworkRepository(store *Store) domain.ArtworkRepository {
	return &artworkRepository{store: store}
}

func (r *artworkRepository) FindAll(filter domain.ArtworkFilter) ([]domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// Filters are additive: every set field becomes one more AND clause.
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE 1=1`
	args := make([]any, 0, 2)
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		query += fmt.Sprintf(" AND is_featured = $%d", len(args))
	}
	if filter.Sold != nil {
		args = append(args, *filter.Sold)
		query += fmt.Sprintf(" AND is_sold = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	var artworks []domain.Artwork
	err := r.store.WithinTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list artworks: %w", err)
		}
		defer rows.Close()

		artworks = make([]domain.Artwork, 0)
		for rows.Next() {
			artwork, err := scanArtwork(rows.Scan)
			if err != nil {
				return fmt.Errorf("scan artwork row: %w", err)
			}
			artworks = append(artworks, artwork)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate artwork rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return artworks, nil
}

func (r *artworkRepository) FindByID(id int64) (domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var artwork domain.Artwork
	err := r.store.WithinTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT `+artworkColumns+`
			FROM artworks
			WHERE id = $1
		`, id)

		found, err := scanArtwork(row.Scan)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrArtworkNotFound
			}
			return fmt.Errorf("select artwork: %w", err)
		}
		artwork = found
		return nil
	})
	if err != nil {
		return domain.Artwork{}, err
	}

	return artwork, nil
}

func (r *artworkRepository) FindTitleByID(id int64) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var title string
	err := r.store.WithinTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT title FROM artworks WHERE id = $1`, id).Scan(&title)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrArtworkNotFound
		}
		if err != nil {
			return fmt.Errorf("select artwork title: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return title, nil
}

func (r *artworkRepository) MarkSold(id int64) (domain.Artwork, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var artwork domain.Artwork
	err := r.store.WithinTx(ctx, func(tx *sql.Tx) error {
		// One statement keeps the sold/featured invariant: a sold artwork is
		// never featured.
		row := tx.QueryRowContext(ctx, `
			UPDATE artworks
			SET is_sold = TRUE,
			    is_featured = FALSE,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING `+artworkColumns+`
		`, id)

		updated, err := scanArtwork(row.Scan)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrArtworkNotFound
			}
			return fmt.Errorf("mark artwork sold: %w", err)
		}
		artwork = updated
		return nil
	})
	if err != nil {
		return domain.Artwork{}, err
	}

	return artwork, nil
}

// scanArtwork maps one row onto an Artwork, converting nullable columns into
// pointer fields.
func scanArtwork(scan func(dest ...any) error) (domain.Artwork, error) {
	var (
		artwork                             domain.Artwork
		description, imageURL, size, medium sql.NullString
		price                               decimal.NullDecimal
		year                                sql.NullInt64
	)

	if err := scan(
		&artwork.ID, &artwork.Title, &description, &imageURL, &price, &size, &medium, &year,
		&artwork.IsFeatured, &artwork.IsSold, &artwork.CreatedAt, &artwork.UpdatedAt,
	); err != nil {
		return domain.Artwork{}, err
	}

	if description.Valid {
		artwork.Description = &description.String
	}
	if imageURL.Valid {
		artwork.ImageURL = &imageURL.String
	}
	if price.Valid {
		artwork.Price = &price.Decimal
	}
	if size.Valid {
		artwork.Size = &size.String
	}
	if medium.Valid {
		artwork.Medium = &medium.String
	}
	if year.Valid {
		y := int(year.Int64)
		artwork.Year = &y
	}

	return artwork, nil
}

var _ domain.ArtworkRepository = (*artworkRepository)(nil)
