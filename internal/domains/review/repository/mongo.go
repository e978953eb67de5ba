package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/infrastructure/mongodb"
)

// =====================================================
// MONGO REPOSITORY IMPLEMENTATION
// =====================================================

type mongoReviewRepository struct {
	coll *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) ReviewRepository {
	return &mongoReviewRepository{coll: db.Collection(mongodb.ReviewsCollection)}
}

// EnsureReviewIndexes creates the unique purchase index and the feed indexes
func EnsureReviewIndexes(ctx context.Context, db *mongo.Database) error {
	feed := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}, {Key: "created_at", Value: -1}}}
	}

	_, err := db.Collection(mongodb.ReviewsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "purchase_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_reviews_purchase"),
		},
		feed("reviewed_user_id"),
		feed("product_id"),
		feed("reviewer_user_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *mongoReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *mongoReviewRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Review, error) {
	return r.findOne(ctx, bson.D{{Key: "purchase_id", Value: purchaseID}})
}

func (r *mongoReviewRepository) findOne(ctx context.Context, filter bson.D) (*model.Review, error) {
	review := &model.Review{}
	if err := r.coll.FindOne(ctx, filter).Decode(review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (r *mongoReviewRepository) ListBySeller(ctx context.Context, sellerID string) ([]*model.Review, error) {
	return r.list(ctx, "reviewed_user_id", sellerID)
}

func (r *mongoReviewRepository) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	return r.list(ctx, "product_id", productID)
}

func (r *mongoReviewRepository) ListByReviewer(ctx context.Context, reviewerID string) ([]*model.Review, error) {
	return r.list(ctx, "reviewer_user_id", reviewerID)
}

func (r *mongoReviewRepository) list(ctx context.Context, field, value string) ([]*model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{{Key: field, Value: value}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*model.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *mongoReviewRepository) Update(ctx context.Context, id string, rating int, comment string, updatedAt time.Time) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating", Value: rating},
		{Key: "comment", Value: comment},
		{Key: "updated_at", Value: updatedAt},
	}}}

	result, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update review: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *mongoReviewRepository) RatingCountsBySeller(ctx context.Context, sellerID string) (map[int]int, error) {
	return r.ratingCounts(ctx, "reviewed_user_id", sellerID)
}

func (r *mongoReviewRepository) RatingCountsByProduct(ctx context.Context, productID string) (map[int]int, error) {
	return r.ratingCounts(ctx, "product_id", productID)
}

func (r *mongoReviewRepository) ratingCounts(ctx context.Context, field, value string) (map[int]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: field, Value: value}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$rating"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}

	var buckets []struct {
		Rating int `bson:"_id"`
		Count  int `bson:"count"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode rating counts: %w", err)
	}

	counts := make(map[int]int, len(buckets))
	for _, b := range buckets {
		counts[b.Rating] = b.Count
	}
	return counts, nil
}
