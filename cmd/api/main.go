package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketplace-backend/pkg/logger"
)

func main() {
	// .env for local development; production uses the process environment
	envErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env, getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		logger.Info("No .env file found, using system environment variables", nil)
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
