package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Prompts  PromptsConfig
	Secrets  SecretsConfig
	Track    TrackConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LLMConfig struct {
	GeminiKey       string
	OpenAIKey       string
	AnthropicKey    string
	DefaultProvider string
	DefaultModel    string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxTokens       int
}

type PromptsConfig struct {
	Dir         string
	Alias       string
	AutoPromote bool // promote a freshly registered version to Alias
	CacheTTL    time.Duration
}

type SecretsConfig struct {
	Backend   string // "env" or "aws"
	AWSRegion string
}

type TrackConfig struct {
	Environment    string
	CloudProvider  string
	Service        string
	ArtifactBucket string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	temperature, err := getEnvFloat("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}

	topP, err := getEnvFloat("LLM_TOP_P", 0.95)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TOP_P: %w", err)
	}

	topK, err := getEnvInt("LLM_TOP_K", 40)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TOP_K: %w", err)
	}

	maxTokens, err := getEnvInt("LLM_MAX_TOKENS", 1024)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_TOKENS: %w", err)
	}

	cacheTTL, err := getEnvInt("PROMPT_CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPT_CACHE_TTL_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		LLM: LLMConfig{
			GeminiKey:       getEnv("GEMINI_API_KEY", ""),
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider: getEnv("LLM_DEFAULT_PROVIDER", "gemini"),
			DefaultModel:    getEnv("LLM_DEFAULT_MODEL", "gemini-1.5-flash"),
			Temperature:     temperature,
			TopP:            topP,
			TopK:            topK,
			MaxTokens:       maxTokens,
		},
		Prompts: PromptsConfig{
			Dir:         getEnv("PROMPTS_DIR", "prompts"),
			Alias:       getEnv("PROMPT_ALIAS", "production"),
			AutoPromote: getEnvBool("PROMPT_AUTO_PROMOTE", true),
			CacheTTL:    time.Duration(cacheTTL) * time.Second,
		},
		Secrets: SecretsConfig{
			Backend:   getEnv("SECRETS_BACKEND", "env"),
			AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		},
		Track: TrackConfig{
			Environment:    getEnv("APP_ENV", "development"),
			CloudProvider:  getEnv("CLOUD_PROVIDER", "aws"),
			Service:        getEnv("SERVICE_NAME", "career-companion"),
			ArtifactBucket: getEnv("TRACK_ARTIFACT_BUCKET", ""),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
