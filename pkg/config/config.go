package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// secretsFile is the local fallback source for the API key.
const secretsFile = "secrets.toml"

type Config struct {
	Env  string
	Port int

	// APIKey is the process-wide pre-shared credential every request must present.
	APIKey string

	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Classifier ClassifierConfig
	Agent      AgentConfig
	Fraud      FraudConfig
	Audit      AuditConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ClassifierConfig points at the external zero-shot inference endpoint.
type ClassifierConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

// AgentConfig points at the external natural-language agent.
type AgentConfig struct {
	URL     string
	Timeout time.Duration
}

// FraudConfig tunes fraud-assessment caching.
type FraudConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AuditConfig tunes the background audit-log queue.
type AuditConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; the environment is the primary source.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	apiKey, err := resolveAPIKey(v)
	if err != nil {
		return nil, err
	}
	cfg.APIKey = apiKey

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Classifier = ClassifierConfig{
		URL:     v.GetString("CLASSIFIER_URL"),
		Model:   v.GetString("CLASSIFIER_MODEL"),
		Timeout: parseDuration(v.GetString("CLASSIFIER_TIMEOUT"), 30*time.Second),
	}

	cfg.Agent = AgentConfig{
		URL:     v.GetString("AGENT_URL"),
		Timeout: parseDuration(v.GetString("AGENT_TIMEOUT"), 60*time.Second),
	}

	cfg.Fraud = FraudConfig{
		CacheEnabled: v.GetBool("FRAUD_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("FRAUD_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Audit = AuditConfig{
		Workers:    v.GetInt("AUDIT_WORKERS"),
		MaxRetries: v.GetInt("AUDIT_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("AUDIT_RETRY_DELAY"), time.Second),
	}

	return cfg, nil
}

// resolveAPIKey loads the shared secret from the environment first, then from the
// local secrets file. Startup fails when neither source yields a value.
func resolveAPIKey(v *viper.Viper) (string, error) {
	if key := strings.TrimSpace(v.GetString("API_KEY")); key != "" {
		return key, nil
	}

	secrets := viper.New()
	secrets.SetConfigFile(secretsFile)
	secrets.SetConfigType("toml")
	if err := secrets.ReadInConfig(); err != nil {
		return "", fmt.Errorf("API_KEY not set and %s not readable: %w", secretsFile, err)
	}

	if key := strings.TrimSpace(secrets.GetString("api.api_key")); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API_KEY not set and %s has no api.api_key entry", secretsFile)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "insurance_claims")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CLASSIFIER_URL", "http://localhost:8501/classify")
	v.SetDefault("CLASSIFIER_MODEL", "facebook/bart-large-mnli")
	v.SetDefault("CLASSIFIER_TIMEOUT", "30s")

	v.SetDefault("AGENT_URL", "http://localhost:8502/agent")
	v.SetDefault("AGENT_TIMEOUT", "60s")

	v.SetDefault("FRAUD_CACHE_ENABLED", false)
	v.SetDefault("FRAUD_CACHE_TTL", "10m")

	v.SetDefault("AUDIT_WORKERS", 1)
	v.SetDefault("AUDIT_MAX_RETRIES", 3)
	v.SetDefault("AUDIT_RETRY_DELAY", "1s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
