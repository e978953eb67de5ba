package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	productRepo "marketplace-backend/internal/domains/product/repository"
	"marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/infrastructure/database"
	pkgdb "marketplace-backend/pkg/database"
)

const purchaseColumns = `
	id, buyer_user_id, seller_user_id, product_id, product_name,
	quantity, total_price_cents, purchase_date, status, photo`

type postgresPurchaseRepository struct {
	db database.DBTX
}

func NewPostgresPurchaseRepository(db database.DBTX) PurchaseRepository {
	return &postgresPurchaseRepository{db: db}
}

func (r *postgresPurchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	return insertPurchase(ctx, r.db, p)
}

func (r *postgresPurchaseRepository) CreateWithStockDecrement(ctx context.Context, p *model.Purchase) error {
	return pkgdb.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		ok, err := productRepo.NewPostgresProductRepository(tx).DecrementStock(ctx, p.ProductID, p.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrInsufficientStock
		}

		return insertPurchase(ctx, tx, p)
	})
}

func insertPurchase(ctx context.Context, db database.DBTX, p *model.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := db.Exec(ctx, query,
		p.ID,
		p.BuyerUserID,
		p.SellerUserID,
		p.ProductID,
		p.ProductName,
		p.Quantity,
		p.TotalPriceCents,
		p.PurchaseDate,
		p.Status,
		p.Photo,
	)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (r *postgresPurchaseRepository) GetByID(ctx context.Context, id string) (*model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`

	purchase, err := scanPurchase(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return purchase, nil
}

func (r *postgresPurchaseRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*model.Purchase, error) {
	return r.list(ctx, "buyer_user_id", buyerID)
}

func (r *postgresPurchaseRepository) ListBySeller(ctx context.Context, sellerID string) ([]*model.Purchase, error) {
	return r.list(ctx, "seller_user_id", sellerID)
}

// list filters on a fixed column name; column is never user input
func (r *postgresPurchaseRepository) list(ctx context.Context, column, value string) ([]*model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE ` + column + ` = $1 ORDER BY purchase_date DESC`

	rows, err := r.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := make([]*model.Purchase, 0)
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}
	return purchases, nil
}

func (r *postgresPurchaseRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	query := `UPDATE purchases SET status = $2 WHERE id = $1 AND status <> $2`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("failed to update purchase status: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanPurchase(row pgx.Row) (*model.Purchase, error) {
	p := &model.Purchase{}
	err := row.Scan(
		&p.ID,
		&p.BuyerUserID,
		&p.SellerUserID,
		&p.ProductID,
		&p.ProductName,
		&p.Quantity,
		&p.TotalPriceCents,
		&p.PurchaseDate,
		&p.Status,
		&p.Photo,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
