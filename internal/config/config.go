package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	MongoURI           string
	MongoDBName        string
	PostgresDSN        string
	MigrationsDirPath  string
	RedisAddr          string
	RedisPassword      string
	KafkaBrokers       []string
	JWTSecret          string
	StripeSecretKey    string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

// Load reads .env when present, then builds the config from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "gymdb"),
		PostgresDSN:        getEnv("POSTGRES_DSN", "host=localhost port=5432 user=gym password=gym dbname=gymdb sslmode=disable"),
		MigrationsDirPath:  getEnv("MIGRATIONS_DIR", "migrations"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:       []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
