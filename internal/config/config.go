package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Khangithub17/real-estate-project/internal/shared/infra/storage"
)

// Config is the centralized application configuration, populated from
// environment variables. A .env file is auto-loaded when present; real
// environment variables take precedence.
type Config struct {
	HTTPPort string

	MongoURI string
	MongoDB  string

	RedisAddr string
	CacheTTL  time.Duration

	UseKafka     bool
	KafkaBrokers []string

	JWTSecret string
	JWTTTL    time.Duration

	UploadDir  string
	UploadBase string
	Minio      storage.MinioConfig

	ClickHouseAddr string
	ClickHouseDB   string
	AnalyticsFlush time.Duration
}

func LoadConfig() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "5000"),

		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGODB_DB", "realestate"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		UseKafka:     getEnvBool("USE_KAFKA", false),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 168)) * time.Hour,

		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
		UploadBase: getEnv("UPLOAD_BASE", "/uploads"),
		Minio: storage.MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "uploads"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},

		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "realestate"),
		AnalyticsFlush: time.Duration(getEnvInt("ANALYTICS_FLUSH_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
