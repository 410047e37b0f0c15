package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"mnch-training-tracker/certificates-backend/internal/catalog"
	"mnch-training-tracker/certificates-backend/internal/certificates"
	"mnch-training-tracker/certificates-backend/internal/config"
	"mnch-training-tracker/certificates-backend/internal/registry"
	"mnch-training-tracker/certificates-backend/internal/stats"
	"mnch-training-tracker/certificates-backend/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	defer db.Close()

	if cfg.Database.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxConnections)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	var archive certificates.Archiver
	if cfg.Archive.Enabled {
		s3Client, err := storage.NewS3Client(context.Background(), cfg.Archive.Region)
		if err != nil {
			log.Fatal("Failed to init S3 client:", err)
		}
		archive = certificates.NewS3Archive(s3Client, cfg.Archive.Bucket)
	}

	clock := certificates.SystemClock()

	certService := certificates.NewService(
		certificates.NewRepository(db),
		registry.NewRepository(db),
		catalog.NewRepository(db),
		certificates.NewIDGenerator(clock),
		certificates.NewRenderer(),
		archive,
		clock,
	)
	certHandler := certificates.NewHandler(certService)

	statsHandler := stats.NewHandler(stats.NewService(stats.NewRepository(db)))

	r := gin.Default()

	v1 := r.Group("/api/v1")
	certHandler.RegisterRoutes(v1)
	statsHandler.RegisterRoutes(v1)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	addr := cfg.Server.GetServerAddr()
	log.Println("Server running on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
