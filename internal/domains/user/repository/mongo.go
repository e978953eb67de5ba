package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/internal/domains/user/model"
	"marketplace-backend/internal/infrastructure/mongodb"
)

const usernameIndex = "uq_users_username"

type mongoUserRepository struct {
	coll     *mongo.Collection
	products *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		coll:     db.Collection(mongodb.UsersCollection),
		products: db.Collection(mongodb.ProductsCollection),
	}
}

// EnsureUserIndexes creates the unique email and username indexes
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mongodb.UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(usernameIndex),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) Create(ctx context.Context, u *model.User) error {
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), usernameIndex) {
				return model.ErrUsernameTaken
			}
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	u := &model.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *mongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.D{{Key: "email", Value: strings.ToLower(email)}})
}

func (r *mongoUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *mongoUserRepository) exists(ctx context.Context, filter bson.D) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (r *mongoUserRepository) List(ctx context.Context) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}}
	result, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update user status: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "password_hash", Value: passwordHash}}}}
	result, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// Delete refuses while products still name the user as owner, matching the
// foreign key on the relational schema.
func (r *mongoUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	owned, err := r.products.CountDocuments(ctx, bson.D{{Key: "owner_user_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user listings: %w", err)
	}
	if owned > 0 {
		return false, model.ErrUserHasListings
	}

	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return result.DeletedCount > 0, nil
}
