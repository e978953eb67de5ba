package config

import (
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/internal/infrastructure/mongodb"
)

// LoadDatabaseConfig builds the pgx pool settings
func (c *Config) LoadDatabaseConfig() *database.DBConfig {
	db := c.Database
	return &database.DBConfig{
		Host:              db.Host,
		Port:              db.Port,
		Username:          db.User,
		Password:          db.Password,
		DBName:            db.Name,
		SSLMode:           db.SSLMode,
		MaxConns:          db.MaxConns,
		MinConns:          db.MinConns,
		MaxConnLifetime:   db.MaxConnLifetime,
		MaxConnIdleTime:   db.MaxConnIdleTime,
		HealthCheckPeriod: db.HealthCheckPeriod,
		MaxRetries:        db.MaxRetries,
		RetryDelay:        db.RetryDelay,
		ConnectTimeout:    db.ConnectTimeout,
	}
}

// LoadMongoConfig builds the document store settings
func (c *Config) LoadMongoConfig() mongodb.Config {
	return mongodb.Config{
		URI:            c.Mongo.URI,
		Database:       c.Mongo.Database,
		ConnectTimeout: c.Mongo.ConnectTimeout,
	}
}
