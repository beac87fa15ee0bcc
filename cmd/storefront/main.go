package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Ackkerman111/sixseven-store/internal/blobstore"
	"github.com/Ackkerman111/sixseven-store/internal/cartstore"
	"github.com/Ackkerman111/sixseven-store/internal/catalog"
	"github.com/Ackkerman111/sixseven-store/internal/checkout"
	"github.com/Ackkerman111/sixseven-store/internal/httpapi"
	"github.com/Ackkerman111/sixseven-store/internal/orders"
)

type Config struct {
	HTTPPort              string
	MongoURI              string
	MongoDBName           string
	RedisAddr             string
	RedisPassword         string
	CatalogDBPath         string
	CatalogMigrationsPath string
	OrdersMigrationsPath  string
	PostgresHost          string
	PostgresPort          int
	PostgresUser          string
	PostgresPassword      string
	PostgresDBName        string
	KafkaBrokers          []string
	BlobRoot              string
	BlobBaseURL           string
	FreeDeliveryThreshold float64
	DeliveryCharge        float64
	UploadConcurrency     int
	RequestTimeout        time.Duration
	ShutdownTimeout       time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:           getEnv("MONGO_DB_NAME", "cartdb"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		CatalogDBPath:         getEnv("CATALOG_DB_PATH", "catalog.db"),
		CatalogMigrationsPath: getEnv("CATALOG_MIGRATIONS_PATH", "migrations/catalog"),
		OrdersMigrationsPath:  getEnv("ORDERS_MIGRATIONS_PATH", "migrations/orders"),
		PostgresHost:          getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:          getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:          getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:      getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDBName:        getEnv("POSTGRES_DB_NAME", "ordersdb"),
		KafkaBrokers:          strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		BlobRoot:              getEnv("BLOB_ROOT", "uploads"),
		BlobBaseURL:           getEnv("BLOB_BASE_URL", "http://localhost:8080/images"),
		FreeDeliveryThreshold: getEnvFloat("FREE_DELIVERY_THRESHOLD", 999),
		DeliveryCharge:        getEnvFloat("DELIVERY_CHARGE", 49),
		UploadConcurrency:     getEnvInt("UPLOAD_CONCURRENCY", 4),
		RequestTimeout:        30 * time.Second,
		ShutdownTimeout:       10 * time.Second,
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Cart persistence
	mongoDB, err := cartstore.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	cartRepo := cartstore.NewMongoRepository(mongoDB)
	if err := cartRepo.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	carts := cartstore.NewStore(cartRepo, cartstore.NewRedisCache(redisClient))

	// Product catalog
	catalogRepo, err := catalog.NewSQLiteRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	gateway := catalog.NewBreakerGateway(catalogRepo)

	// Orders
	orderCreds := &orders.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDBName,
		MigrationsDirPath: cfg.OrdersMigrationsPath,
	}
	orderRepo, err := orders.NewRepository(orderCreds)
	if err != nil {
		log.Fatalf("Failed to connect to orders database: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(orderCreds); err != nil {
		log.Fatalf("Failed to run orders migrations: %v", err)
	}
	log.Printf("Connected to postgres at %s:%d", cfg.PostgresHost, cfg.PostgresPort)

	// Fulfillment status consumer
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	consumer := orders.NewStatusConsumer(orderRepo, cfg.KafkaBrokers...)
	go consumer.Run(consumerCtx)

	// Image uploads
	blobStore, err := blobstore.NewDiskStore(cfg.BlobRoot, cfg.BlobBaseURL)
	if err != nil {
		log.Fatalf("Failed to set up blob store: %v", err)
	}
	uploader := blobstore.NewUploader(blobStore, cfg.UploadConcurrency)

	// Checkout core
	reconciler := checkout.NewReconciler(gateway, checkout.Config{
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		DeliveryCharge:        cfg.DeliveryCharge,
	})
	submitter := checkout.NewSubmitter(orderRepo, carts)

	cartHandler := httpapi.NewCartHandler(carts, gateway, cfg.RequestTimeout)
	productHandler := httpapi.NewProductHandler(catalogRepo, uploader, cfg.RequestTimeout)
	checkoutHandler := httpapi.NewCheckoutHandler(carts, reconciler, submitter, cfg.RequestTimeout)
	ordersHandler := httpapi.NewOrdersHandler(orderRepo, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httpapi.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(httpapi.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Uploaded product images
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.BlobRoot))))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{id}", productHandler.Get)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddEntry)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveEntry)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", checkoutHandler.Quote)
			r.Post("/", checkoutHandler.PlaceOrder)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.List)
			r.Get("/{id}", ordersHandler.Get)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopConsumer()
	consumer.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}

	log.Println("server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
