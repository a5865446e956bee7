package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aoyamagallery/backend/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository creates the PostgreSQL implementation of OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(order domain.Order, artworkTitle string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.store.WithinTx(ctx, func(tx *sql.Tx) error {
		// Lock the artwork row so its sold flag cannot flip between this
		// check and the insert. The service has already checked once; this
		// guard closes the remaining window under concurrent orders.
		var sold bool
		err := tx.QueryRowContext(ctx, `
			SELECT is_sold
			FROM artworks
			WHERE id = $1
			FOR UPDATE
		`, order.ArtworkID).Scan(&sold)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrArtworkNotFound
		}
		if err != nil {
			return fmt.Errorf("lock artwork row: %w", err)
		}
		if sold {
			return domain.ErrArtworkSold
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (artwork_id, artwork_title, customer_name, email, phone, message)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`,
			order.ArtworkID, artworkTitle, order.CustomerName, order.Email, order.Phone, order.Message,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	order.ArtworkTitle = artworkTitle
	return order, nil
}

func (r *orderRepository) FindByID(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.store.WithinTx(ctx, func(tx *sql.Tx) error {
		var phone, message sql.NullString
		err := tx.QueryRowContext(ctx, `
			SELECT id, artwork_id, artwork_title, customer_name, email, phone, message, created_at
			FROM orders
			WHERE id = $1
		`, id).Scan(
			&order.ID, &order.ArtworkID, &order.ArtworkTitle, &order.CustomerName,
			&order.Email, &phone, &message, &order.CreatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("select order: %w", err)
		}

		if phone.Valid {
			order.Phone = &phone.String
		}
		if message.Valid {
			order.Message = &message.String
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
