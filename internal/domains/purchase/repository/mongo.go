package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	productRepo "marketplace-backend/internal/domains/product/repository"
	"marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/infrastructure/mongodb"
	"marketplace-backend/pkg/logger"
)

// restoreStockTimeout bounds the compensating increment. It runs detached
// from the request context.
const restoreStockTimeout = 5 * time.Second

type mongoPurchaseRepository struct {
	coll     *mongo.Collection
	products productRepo.ProductRepository
}

func NewMongoPurchaseRepository(db *mongo.Database, products productRepo.ProductRepository) PurchaseRepository {
	return &mongoPurchaseRepository{
		coll:     db.Collection(mongodb.PurchasesCollection),
		products: products,
	}
}

// EnsurePurchaseIndexes creates the buyer and seller history indexes
func EnsurePurchaseIndexes(ctx context.Context, db *mongo.Database) error {
	history := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}, {Key: "purchase_date", Value: -1}}}
	}

	_, err := db.Collection(mongodb.PurchasesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		history("buyer_user_id"),
		history("seller_user_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create purchase indexes: %w", err)
	}
	return nil
}

func (r *mongoPurchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// CreateWithStockDecrement takes the stock with a conditional $inc first and
// gives it back if the insert fails
func (r *mongoPurchaseRepository) CreateWithStockDecrement(ctx context.Context, p *model.Purchase) error {
	ok, err := r.products.DecrementStock(ctx, p.ProductID, p.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrInsufficientStock
	}

	if err := r.Create(ctx, p); err != nil {
		r.restoreStock(ctx, p)
		return err
	}
	return nil
}

func (r *mongoPurchaseRepository) restoreStock(ctx context.Context, p *model.Purchase) {
	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreStockTimeout)
	defer cancel()

	if err := r.products.IncrementStock(restoreCtx, p.ProductID, p.Quantity); err != nil {
		logger.Error("failed to restore stock after purchase insert failure", err)
	}
}

func (r *mongoPurchaseRepository) GetByID(ctx context.Context, id string) (*model.Purchase, error) {
	purchase := &model.Purchase{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(purchase); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return purchase, nil
}

func (r *mongoPurchaseRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*model.Purchase, error) {
	return r.list(ctx, "buyer_user_id", buyerID)
}

func (r *mongoPurchaseRepository) ListBySeller(ctx context.Context, sellerID string) ([]*model.Purchase, error) {
	return r.list(ctx, "seller_user_id", sellerID)
}

func (r *mongoPurchaseRepository) list(ctx context.Context, field, value string) ([]*model.Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "purchase_date", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{{Key: field, Value: value}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	purchases := make([]*model.Purchase, 0)
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode purchases: %w", err)
	}
	return purchases, nil
}

func (r *mongoPurchaseRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}}

	result, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update purchase status: %w", err)
	}
	return result.ModifiedCount > 0, nil
}
