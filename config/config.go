package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBUrl         string
	RunMigrations bool
	DBMaxConns    int
	DBMinConns    int
	LogLevel      string
	// Auth
	JWTSecret string
	JWTTTL    time.Duration
	// Storage
	PublicDir         string
	StorageDriver     string // "local" or "s3"
	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string // optional, for S3-compatible providers
	S3PublicURL       string // base URL objects are served from
	MaxCVSizeMB       int
	MaxImageSizeMB    int
	ClamAVAddress     string // optional clamd address; empty disables scanning
	ClamAVTimeout     time.Duration
	// Redis
	RedisURL      string
	RedisPassword string
	// Rate limiting
	RateLimitLoginPerMinute  int
	RateLimitUploadPerMinute int
	// Failed-login lockout
	LoginMaxAttempts   int
	LoginBlockDuration time.Duration
	// Vacancy listing
	VacancyListFallback bool
	// CORS
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 25),
		DBMinConns:    getEnvInt("DB_MIN_CONNS", 2),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 72)) * time.Hour,

		PublicDir:         strings.TrimRight(getEnv("PUBLIC_DIR", "./Public"), "/"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3PublicURL:       strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
		MaxCVSizeMB:       getEnvInt("MAX_CV_SIZE_MB", 10),
		MaxImageSizeMB:    getEnvInt("MAX_IMAGE_SIZE_MB", 5),
		ClamAVAddress:     getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeout:     time.Duration(getEnvInt("CLAMAV_TIMEOUT_SECONDS", 30)) * time.Second,

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitLoginPerMinute:  getEnvInt("RATE_LIMIT_LOGIN_PER_MINUTE", 10),
		RateLimitUploadPerMinute: getEnvInt("RATE_LIMIT_UPLOAD_PER_MINUTE", 20),

		LoginMaxAttempts:   getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginBlockDuration: time.Duration(getEnvInt("LOGIN_BLOCK_MINUTES", 15)) * time.Minute,

		VacancyListFallback: getEnvBool("VACANCY_LIST_FALLBACK", false),

		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET not configured. Only Basic authentication will be accepted.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// UploadDir is where the local storage driver writes files.
func (c *Config) UploadDir() string {
	return c.PublicDir + "/uploads"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
