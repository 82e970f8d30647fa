package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port            string
	MongoURL        string
	DBName          string
	Store           string
	SecretKey       []byte
	TokenTTL        time.Duration
	RedisAddr       string
	CORSOrigins     []string
	RateLimitPerMin int
	RateLimitBurst  int
	PDFFontPath     string
	TrustProxy      bool
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found; using system environment")
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        normalizePort(getEnv("PORT", ":8080")),
		MongoURL:    getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "alpaca_farm"),
		Store:       strings.ToLower(getEnv("STORE", StoreMongo)),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		PDFFontPath: getEnv("PDF_FONT_PATH", ""),
	}

	var err error
	if cfg.TrustProxy, err = getBool("TRUST_PROXY", false); err != nil {
		return nil, err
	}
	if cfg.Store != StoreMongo && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StoreMongo, StoreMemory, cfg.Store)
	}

	ttl, err := getInt("TOKEN_TTL_MINUTES", 24*60)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", ttl)
	}
	cfg.TokenTTL = time.Duration(ttl) * time.Minute

	if cfg.RateLimitPerMin, err = getInt("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}

	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		cfg.SecretKey = []byte(secret)
	} else {
		log.Println("[Config] SECRET_KEY not set; generating a random key. Tokens will be invalid after restart. SET SECRET_KEY IN PRODUCTION!")
		if cfg.SecretKey, err = randomBytes(32); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func normalizePort(port string) string {
	if port[0] != ':' {
		return ":" + port
	}
	return port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate secret key: %w", err)
	}
	return b, nil
}
