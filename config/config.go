package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// APIKey is the bearer credential for the business search API. It is
	// handed to the search client at construction and never read globally.
	APIKey        string
	YelpBaseURL   string
	SearchLocale  string
	HTTPTimeoutMs int

	PageSize         int
	HardCap          int
	MaxQueryAttempts int

	Location string
	Category string
	MapZoom  int

	CSVOutputPath string
	MapOutputPath string
	SnapshotPath  string
	ChromeBin     string

	StorageDriver    string
	SQLitePath       string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	S3Bucket  string
	AWSRegion string

	ServerAddr string
	LogLevel   string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIKey:        getEnv("YELP_API_KEY", ""),
		YelpBaseURL:   getEnv("YELP_BASE_URL", "https://api.yelp.com/v3"),
		SearchLocale:  getEnv("SEARCH_LOCALE", "en_CA"),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 10000),

		PageSize:         getEnvInt("PAGE_SIZE", 50),
		HardCap:          getEnvInt("HARD_CAP", 950),
		MaxQueryAttempts: getEnvInt("MAX_QUERY_ATTEMPTS", 3),

		Location: strings.TrimSpace(getEnv("LOCATION", "")),
		Category: strings.TrimSpace(getEnv("CATEGORY", "")),
		MapZoom:  getEnvInt("MAP_ZOOM", 11),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/featured_location_results.csv"),
		MapOutputPath: getEnv("MAP_OUTPUT_PATH", "./output/heatmap.html"),
		SnapshotPath:  getEnv("SNAPSHOT_PATH", ""),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
		SQLitePath:       getEnv("SQLITE_PATH", "./output/businesses.db"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "heatmap"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "heatmap123"),
		PostgresDB:       getEnv("POSTGRES_DB", "business_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 3600),

		S3Bucket:  getEnv("S3_BUCKET", ""),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Interactive reports whether the query has to be collected from a terminal.
func (c *Config) Interactive() bool {
	return c.Location == "" || c.Category == ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
