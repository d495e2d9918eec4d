package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string
	AppEnv   string

	// RabbitURI vacío desactiva la publicación de eventos del carrito.
	RabbitURI       string
	CartEventsQueue string

	ImageBaseURL     string
	ImagePlaceholder string

	CacheTTL time.Duration
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		}
	}

	return &Config{
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDB:          getEnv("MONGO_DB", "shopfront"),
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		RabbitURI:        getEnv("RABBITMQ_URI", ""),
		CartEventsQueue:  getEnv("CART_EVENTS_QUEUE", "cart-events"),
		ImageBaseURL:     getEnv("IMAGE_BASE_URL", "/images"),
		ImagePlaceholder: getEnv("IMAGE_PLACEHOLDER", ""),
		CacheTTL:         getDurationEnv("CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Println("⚠️ Invalid duration in", key, "- using default:", err)
		return fallback
	}
	return d
}
