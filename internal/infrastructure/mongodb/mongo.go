package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	UsersCollection     = "users"
	ProductsCollection  = "products"
	PurchasesCollection = "purchases"
	ReviewsCollection   = "reviews"
)

// Config for the document store
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Client owns the driver client and the application database handle
type Client struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect dials MongoDB and verifies the primary is reachable
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("[MONGO] Connected successfully")
	return &Client{Client: client, Database: client.Database(cfg.Database)}, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
