package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/infrastructure/mongodb"
)

type mongoProductRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		coll: db.Collection(mongodb.ProductsCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// EnsureProductIndexes creates the owner listing and category browse indexes
func EnsureProductIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mongodb.ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

func (r *mongoProductRepository) Create(ctx context.Context, p *model.Product) error {
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *mongoProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product := &model.Product{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *mongoProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Product, error) {
	return r.find(ctx, bson.D{{Key: "owner_user_id", Value: ownerID}})
}

func (r *mongoProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	query := bson.D{}
	if filter.ForSale != nil {
		query = append(query, bson.E{Key: "for_sale", Value: *filter.ForSale})
	}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	return r.find(ctx, query)
}

func (r *mongoProductRepository) find(ctx context.Context, filter bson.D) ([]*model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*model.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// DecrementStock matches only documents with enough stock, so concurrent
// buyers cannot drive quantity below zero
func (r *mongoProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "quantity", Value: bson.D{{Key: "$gte", Value: quantity}}},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "quantity", Value: -quantity}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: r.now()}}},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoProductRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "quantity", Value: quantity}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: r.now()}}},
	}

	if _, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update); err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	return nil
}
