package config

import (
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/car_export/pkg/config"
	"github.com/Skotchmaster/car_export/pkg/db"
)

const (
	StorageS3    = "s3"
	StorageLocal = "local"
)

type Config struct {
	ServiceName string
	ServerPort  string
	LogLevel    string
	LogFormat   string

	DatabaseURL string
	DBMaxOpen   int
	DBMaxIdle   int
	DBSlowQuery time.Duration

	JWTSecret     []byte
	JWTIssuer     string
	AdminUsername string
	AdminPassword string

	StorageDriver    string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	S3Bucket         string
	S3UseSSL         bool
	StoragePublicURL string
	LocalStorageDir  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	KafkaBrokers      []string
	KafkaProductTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	ContactMongoURI string
	ContactMongoDB  string

	OTLPEndpoint string
	OTelStdout   bool

	CategoryPlaceholderURL string
	MaxUploadMB            int
}

// DBOptions maps the pool and logging settings onto pkg/db.
func (c *Config) DBOptions(l *slog.Logger) db.Options {
	opts := db.DefaultOptions()
	opts.MaxOpenConns = c.DBMaxOpen
	opts.MaxIdleConns = c.DBMaxIdle
	opts.SlowThreshold = c.DBSlowQuery
	opts.Logger = l
	return opts
}

// LoadEnv reads path into the environment; a missing file is only a notice.
func LoadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("notice: %s not loaded: %v, using system environment", path, err)
	}
}

func Load() *Config {
	return &Config{
		ServiceName: config.EnvDefault("SERVICE_NAME", "car-export-catalog"),
		ServerPort:  config.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:    config.EnvDefault("LOG_LEVEL", "info"),
		LogFormat:   config.EnvDefault("LOG_FORMAT", "json"),

		DatabaseURL: config.EnvDefault("DATABASE_URL", ""),
		DBMaxOpen:   config.EnvIntDefault("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdle:   config.EnvIntDefault("DB_MAX_IDLE_CONNS", 10),
		DBSlowQuery: time.Duration(config.EnvIntDefault("DB_SLOW_QUERY_MS", 500)) * time.Millisecond,

		JWTSecret:     []byte(config.EnvDefault("JWT_SECRET", "")),
		JWTIssuer:     config.EnvDefault("JWT_ISSUER", "car-export-admin"),
		AdminUsername: config.EnvDefault("ADMIN_USERNAME", ""),
		AdminPassword: config.EnvDefault("ADMIN_PASSWORD", ""),

		StorageDriver:    config.EnvDefault("STORAGE_DRIVER", StorageLocal),
		S3Endpoint:       config.EnvDefault("S3_ENDPOINT", ""),
		S3AccessKey:      config.EnvDefault("S3_ACCESS_KEY", ""),
		S3SecretKey:      config.EnvDefault("S3_SECRET_KEY", ""),
		S3Bucket:         config.EnvDefault("S3_BUCKET", ""),
		S3UseSSL:         config.EnvBool("S3_USE_SSL"),
		StoragePublicURL: config.EnvDefault("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads"),
		LocalStorageDir:  config.EnvDefault("LOCAL_STORAGE_DIR", "./uploads"),

		RedisAddr:     config.EnvDefault("REDIS_ADDR", ""),
		RedisPassword: config.EnvDefault("REDIS_PASSWORD", ""),
		RedisDB:       config.EnvIntDefault("REDIS_DB", 0),
		CacheTTL:      time.Duration(config.EnvIntDefault("CACHE_TTL_SECONDS", 60)) * time.Second,

		KafkaBrokers:      config.CSV(config.EnvDefault("KAFKA_BROKERS", "")),
		KafkaProductTopic: config.EnvDefault("KAFKA_PRODUCT_TOPIC", "product-events"),

		ESURL:      config.EnvDefault("ES_URL", ""),
		ESUser:     config.EnvDefault("ES_USER", ""),
		ESPassword: config.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    config.EnvDefault("ES_INDEX", "products"),

		ContactMongoURI: config.EnvDefault("CONTACT_MONGO_URI", ""),
		ContactMongoDB:  config.EnvDefault("CONTACT_MONGO_DB", "car_export"),

		OTLPEndpoint: config.EnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelStdout:   config.EnvBool("OTEL_STDOUT"),

		CategoryPlaceholderURL: config.EnvDefault("CATEGORY_PLACEHOLDER_URL", "/images/category-placeholder.png"),
		MaxUploadMB:            config.EnvIntDefault("MAX_UPLOAD_MB", 20),
	}
}

// MustCatalog loads the catalog API configuration and aborts on missing required values.
func MustCatalog() *Config {
	cfg := Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustOneOf(cfg.StorageDriver, "STORAGE_DRIVER", StorageS3, StorageLocal)
	if cfg.StorageDriver == StorageS3 {
		config.MustNonEmpty(cfg.S3Endpoint, "S3_ENDPOINT")
		config.MustNonEmpty(cfg.S3Bucket, "S3_BUCKET")
	}

	return cfg
}

// MustIndexer loads the indexer configuration; it needs the database, brokers and Elasticsearch.
func MustIndexer() *Config {
	cfg := Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.ESURL, "ES_URL")

	return cfg
}
