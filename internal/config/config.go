package config

import "os"

var (
	ApiPort      = GetEnv("API_PORT", "8080")
	DBDriver     = GetEnv("DB_DRIVER", "sqlite3")
	DBDSN        = GetEnv("DB_DSN", "socialmedia.db")
	KafkaEnabled = GetEnv("KAFKA_ENABLED", "0") == "1"
	KafkaBroker  = GetEnv("KAFKA_BROKER", "kafka:9092")
	Topic        = GetEnv("KAFKA_TOPIC", "message-events")
)

// GetEnv returns the value of the environment variable or a default value
func GetEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
