package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Session   SessionConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type CatalogConfig struct {
	// Source is "file" or "http".
	Source         string
	FilePath       string
	FeedURL        string
	ReloadInterval time.Duration
	TrendingSize   int
}

type SessionConfig struct {
	// Store is "memory" or "redis".
	Store         string
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type AssistantConfig struct {
	// Backend is one of "gemini", "deepseek", "local", "null".
	Backend        string
	GeminiAPIKey   string
	GeminiModel    string
	DeepSeekAPIKey string
	DeepSeekURL    string
	LocalURL       string
	LocalModel     string
	Timeout        time.Duration
	MaxTokens      int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Elara Search API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "elara_market"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			Source:         getEnv("CATALOG_SOURCE", "file"),
			FilePath:       getEnv("CATALOG_FILE_PATH", "database/data/products.json"),
			FeedURL:        getEnv("CATALOG_FEED_URL", ""),
			ReloadInterval: getEnvDuration("CATALOG_RELOAD_INTERVAL", 15*time.Minute),
			TrendingSize:   getEnvInt("CATALOG_TRENDING_SIZE", 20),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "memory"),
			IdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		},
		Assistant: AssistantConfig{
			Backend:        getEnv("ASSISTANT_BACKEND", "null"),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			DeepSeekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
			DeepSeekURL:    getEnv("DEEPSEEK_URL", "https://api.deepseek.com/v1"),
			LocalURL:       getEnv("LOCAL_MODEL_URL", "http://localhost:11434"),
			LocalModel:     getEnv("LOCAL_MODEL_NAME", "llama3"),
			Timeout:        getEnvDuration("ASSISTANT_TIMEOUT", 10*time.Second),
			MaxTokens:      getEnvInt("ASSISTANT_MAX_TOKENS", 256),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	switch cfg.Catalog.Source {
	case "file":
		if cfg.Catalog.FilePath == "" {
			return nil, errors.New("missing catalog file path")
		}
	case "http":
		if cfg.Catalog.FeedURL == "" {
			return nil, errors.New("missing catalog feed url")
		}
	default:
		return nil, errors.New("unknown catalog source: " + cfg.Catalog.Source)
	}

	switch cfg.Session.Store {
	case "memory", "redis":
	default:
		return nil, errors.New("unknown session store: " + cfg.Session.Store)
	}

	switch cfg.Assistant.Backend {
	case "gemini", "deepseek", "local", "null":
	default:
		return nil, errors.New("unknown assistant backend: " + cfg.Assistant.Backend)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}

	return defaultVal
}
