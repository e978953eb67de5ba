package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/infrastructure/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const reviewColumns = `
	id, purchase_id, reviewer_user_id, reviewed_user_id, product_id,
	rating, comment, created_at, updated_at`

type postgresReviewRepository struct {
	db database.DBTX
}

func NewPostgresReviewRepository(db database.DBTX) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.PurchaseID,
		review.ReviewerUserID,
		review.ReviewedUserID,
		review.ProductID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		// uq_reviews_purchase closes the check-then-insert race
		if database.IsUniqueViolation(err) {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// =====================================================
// SINGLE LOOKUPS
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresReviewRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE purchase_id = $1`
	return r.getOne(ctx, query, purchaseID)
}

func (r *postgresReviewRepository) getOne(ctx context.Context, query string, arg string) (*model.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// =====================================================
// LISTS
// =====================================================

func (r *postgresReviewRepository) ListBySeller(ctx context.Context, sellerID string) ([]*model.Review, error) {
	return r.list(ctx, "reviewed_user_id", sellerID)
}

func (r *postgresReviewRepository) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	return r.list(ctx, "product_id", productID)
}

func (r *postgresReviewRepository) ListByReviewer(ctx context.Context, reviewerID string) ([]*model.Review, error) {
	return r.list(ctx, "reviewer_user_id", reviewerID)
}

// list filters on a fixed column name; column is never user input
func (r *postgresReviewRepository) list(ctx context.Context, column, value string) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE ` + column + ` = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (r *postgresReviewRepository) Update(ctx context.Context, id string, rating int, comment string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, rating, comment, updatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update review: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// =====================================================
// AGGREGATION
// =====================================================

func (r *postgresReviewRepository) RatingCountsBySeller(ctx context.Context, sellerID string) (map[int]int, error) {
	return r.ratingCounts(ctx, "reviewed_user_id", sellerID)
}

func (r *postgresReviewRepository) RatingCountsByProduct(ctx context.Context, productID string) (map[int]int, error) {
	return r.ratingCounts(ctx, "product_id", productID)
}

func (r *postgresReviewRepository) ratingCounts(ctx context.Context, column, value string) (map[int]int, error) {
	query := `SELECT rating, COUNT(*) FROM reviews WHERE ` + column + ` = $1 GROUP BY rating`

	rows, err := r.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating count: %w", err)
		}
		counts[rating] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating counts: %w", err)
	}

	return counts, nil
}

// =====================================================
// HELPERS
// =====================================================

func scanReview(row pgx.Row) (*model.Review, error) {
	review := &model.Review{}
	err := row.Scan(
		&review.ID,
		&review.PurchaseID,
		&review.ReviewerUserID,
		&review.ReviewedUserID,
		&review.ProductID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}
