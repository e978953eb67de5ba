package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/infrastructure/database"
)

const productColumns = `
	id, owner_user_id, name, category, price_cents, quantity, for_sale,
	photos, description, created_at, updated_at`

type postgresProductRepository struct {
	db database.DBTX
}

// NewPostgresProductRepository db may be a pool or a pgx.Tx
func NewPostgresProductRepository(db database.DBTX) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Category,
		p.PriceCents,
		p.Quantity,
		p.ForSale,
		photos,
		p.Description,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_user_id = $1 ORDER BY created_at DESC`

	return r.query(ctx, query, ownerID)
}

func (r *postgresProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	var conditions []string
	var args []any

	if filter.ForSale != nil {
		args = append(args, *filter.ForSale)
		conditions = append(conditions, "for_sale = $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	return r.query(ctx, query, args...)
}

func (r *postgresProductRepository) query(ctx context.Context, query string, args ...any) ([]*model.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (r *postgresProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`

	result, err := r.db.Exec(ctx, query, id, quantity)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *postgresProductRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	query := `UPDATE products SET quantity = quantity + $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, quantity); err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Category,
		&p.PriceCents,
		&p.Quantity,
		&p.ForSale,
		&p.Photos,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
