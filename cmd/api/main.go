// cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"coffee-scm-api-server/config"
	"coffee-scm-api-server/internal/api/routes"
	"coffee-scm-api-server/internal/database"
	"coffee-scm-api-server/internal/qr"
	"coffee-scm-api-server/internal/s3"
	"coffee-scm-api-server/internal/sms"
	"coffee-scm-api-server/internal/socket"
	"coffee-scm-api-server/internal/store"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// 1. Load .env (optional) and configuration
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. Pick the storage backend
	var storage store.Storage
	if cfg.Mongo.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			log.Fatalf("Failed to ping MongoDB: %v", err)
		}
		db := client.Database(cfg.Mongo.DBName)

		if err := database.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}

		storage = store.NewMongo(db)
		defer client.Disconnect(context.Background())
	} else {
		log.Println("MONGO_URI not set; using the in-memory store (data is lost on restart)")
		storage = store.NewMemory()
	}

	// 3. QR encoder, with S3 hosting when a bucket is configured
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
	}
	encoder := qr.NewEncoder(uploader)

	// 4. SMS gateway and the pending-notification sweep
	var gateway sms.Gateway
	if cfg.SMS.GatewayURL != "" {
		gateway = sms.NewHTTPGateway(cfg.SMS.GatewayURL)
	} else {
		log.Println("SMS_GATEWAY_URL not set; notifications will be recorded as failed")
	}

	if gateway != nil && cfg.SMS.SweepInterval != "" {
		interval, err := time.ParseDuration(cfg.SMS.SweepInterval)
		if err != nil {
			log.Fatalf("Invalid sms.sweepInterval: %v", err)
		}
		sweeper := sms.NewSweeper(storage, gateway, interval)
		go sweeper.Run(context.Background())
		log.Printf("SMS retry sweep running every %s", interval)
	}

	// 5. WebSocket hub for the auction event feed
	wsHub := socket.NewHub()

	// 6. Wire everything into the router and start serving
	router := routes.SetupRouter(storage, encoder, gateway, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
