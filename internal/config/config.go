package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Store backend: "memory" or "sqlite"
	Backend    string
	SQLitePath string
	// Origin of the shared id sequence (first allocated id)
	IDOrigin int64
	// JWT Configuration
	JWTSecret   string
	AuthEnabled bool
	// Redis Configuration (optional - item read cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int // Cache TTL in seconds
	UseCache      bool
	// Kafka Configuration (optional - domain event publishing)
	KafkaBrokers    []string
	KafkaTopicItems string
	KafkaTopicCarts string
	KafkaClientID   string
	KafkaAcks       string
	KafkaRetries    int
	UseKafka        bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9093")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Backend:     getEnv("STORE_BACKEND", "memory"),
		SQLitePath:  getEnv("SQLITE_PATH", "./shop.db"),
		IDOrigin:    int64(getEnvAsInt("ID_ORIGIN", 0)),
		// JWT Configuration
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		AuthEnabled: getEnvAsBool("AUTH_ENABLED", false),
		// Redis Configuration (optional)
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 300),
		UseCache:      getEnvAsBool("USE_CACHE", false),
		// Kafka Configuration (optional)
		KafkaBrokers:    kafkaBrokers,
		KafkaTopicItems: getEnv("KAFKA_TOPIC_ITEMS", "shop.items"),
		KafkaTopicCarts: getEnv("KAFKA_TOPIC_CARTS", "shop.carts"),
		KafkaClientID:   getEnv("KAFKA_CLIENT_ID", "shop-service"),
		KafkaAcks:       getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:    getEnvAsInt("KAFKA_RETRIES", 3),
		UseKafka:        getEnvAsBool("USE_KAFKA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}
