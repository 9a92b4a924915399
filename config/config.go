package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port          string
	GinMode       string
	StorageDriver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	EventTTL time.Duration
}

type JWTConfig struct {
	Issuer   string
	Audience string
	Key      string
	TTL      time.Duration
}

// StorageConfig S3 相容的物件儲存
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時直接使用環境變數
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		JWT:      GetJWTConfig(),
		Storage:  GetStorageConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
		EventTTL: time.Minute,
	}

	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			GinMode:       "test",
			StorageDriver: StorageDriverMemory,
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		JWT: JWTConfig{
			Issuer:   "eventool-test",
			Audience: "eventool-test",
			Key:      "test-signing-key-with-enough-length",
			TTL:      time.Hour,
		},
		Storage: StorageConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "eventool-test",
			Region:    "us-east-1",
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:          getEnv("SERVER_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "release"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "eventool"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25)),
		MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		EventTTL: getEnvDuration("EVENT_CACHE_TTL", 10*time.Minute),
	}
}

func GetJWTConfig() JWTConfig {
	return JWTConfig{
		Issuer:   getEnv("JWT_ISSUER", "eventool"),
		Audience: getEnv("JWT_AUDIENCE", "eventool"),
		Key:      getEnv("JWT_KEY", ""),
		TTL:      getEnvDuration("JWT_TTL", 12*time.Hour),
	}
}

func GetStorageConfig() StorageConfig {
	useSSL, err := strconv.ParseBool(getEnv("S3_USE_SSL", "true"))
	if err != nil {
		panic(err)
	}

	return StorageConfig{
		Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("S3_ACCESS_KEY", ""),
		SecretKey: getEnv("S3_SECRET_KEY", ""),
		Bucket:    getEnv("S3_BUCKET", "eventool"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		UseSSL:    useSSL,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		panic(err)
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		panic(err)
	}
	return value
}
