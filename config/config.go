package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port     string
	LogLevel string

	StorageDriver string
	StoragePath   string
	MongoURI      string
	DBName        string

	CatalogSource string
	PageSize      int

	JWTSecret  string
	SessionTTL time.Duration

	CheckoutDelay time.Duration

	AWSRegion     string
	AWSBucketName string

	SendGridAPIKey string
	MailFrom       string

	DemoEmail        string
	DemoPasswordHash string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = getEnv("PORT", "8080")
	LogLevel = getEnv("LOG_LEVEL", "info")

	// memory, file, sqlite or mongo
	StorageDriver = getEnv("STORAGE_DRIVER", "file")
	StoragePath = getEnv("STORAGE_PATH", "data")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getEnv("DB_NAME", "shoplungu")

	CatalogSource = os.Getenv("CATALOG_SOURCE")
	PageSize = getEnvInt("PAGE_SIZE", 12)

	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("JWT_SECRET is not set, using an insecure development secret")
		JWTSecret = "shoplungu-dev-secret"
	}
	SessionTTL = getEnvDuration("SESSION_TTL", 30*24*time.Hour)

	CheckoutDelay = getEnvDuration("CHECKOUT_DELAY", 2*time.Second)

	AWSRegion = getEnv("AWS_REGION", "ap-south-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	MailFrom = getEnv("MAIL_FROM", "orders@shoplungu.com")

	DemoEmail = getEnv("DEMO_EMAIL", "admin@shoplungu.com")
	DemoPasswordHash = os.Getenv("DEMO_PASSWORD_HASH")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
