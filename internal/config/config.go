package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"
)

type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	JWT     JWTConfig
	LLM     LLMConfig
	YouTube YouTubeConfig
	Content ContentConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type RedisConfig struct {
	Address    string
	Password   string
	DB         int
	HistoryTTL time.Duration
	ContentTTL time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// LLMConfig configures the generative-language collaborator.
// Provider is either "googleai" (keys rotated from APIKeys) or "ollama".
type LLMConfig struct {
	Provider  string
	Model     string
	ServerURL string
	APIKeys   []string
	Timeout   time.Duration
}

type YouTubeConfig struct {
	BaseURL    string
	APIKeys    []string
	MaxResults int
	Timeout    time.Duration
}

type ContentConfig struct {
	// ReuseProbability is the chance that generate-quiz serves stored questions
	// instead of asking the LLM for new ones.
	ReuseProbability float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("server.idle_timeout", "20s")
	v.SetDefault("server.body_limit", 10*1024*1024)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.name", "FREEPDB1")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.history_ttl", "5m")
	v.SetDefault("redis.content_ttl", "1h")

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("jwt.access_token_ttl", "15m")
	v.SetDefault("jwt.refresh_token_ttl", "168h")

	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", "60s")

	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.max_results", 5)
	v.SetDefault("youtube.timeout", "10s")

	v.SetDefault("content.reuse_probability", 0.5)
}

// LoadConfig reads config.yaml (when present) and overlays APP_* environment
// variables, e.g. APP_DB_HOST or APP_LLM_API_KEYS="k1,k2".
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:    v.GetString("redis.address"),
			Password:   v.GetString("redis.password"),
			DB:         v.GetInt("redis.db"),
			HistoryTTL: v.GetDuration("redis.history_ttl"),
			ContentTTL: v.GetDuration("redis.content_ttl"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		JWT: JWTConfig{
			SecretKey:       v.GetString("jwt.secret_key"),
			AccessTokenTTL:  v.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: v.GetDuration("jwt.refresh_token_ttl"),
		},
		LLM: LLMConfig{
			Provider:  v.GetString("llm.provider"),
			Model:     v.GetString("llm.model"),
			ServerURL: v.GetString("llm.server_url"),
			APIKeys:   splitList(v.GetStringSlice("llm.api_keys")),
			Timeout:   v.GetDuration("llm.timeout"),
		},
		YouTube: YouTubeConfig{
			BaseURL:    v.GetString("youtube.base_url"),
			APIKeys:    splitList(v.GetStringSlice("youtube.api_keys")),
			MaxResults: v.GetInt("youtube.max_results"),
			Timeout:    v.GetDuration("youtube.timeout"),
		},
		Content: ContentConfig{
			ReuseProbability: v.GetFloat64("content.reuse_probability"),
		},
	}
}

// splitList accepts both YAML lists and a single comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// GetDSN returns the go-ora connection URL for the configured database.
func (c *Config) GetDSN() string {
	return go_ora.BuildUrl(c.DB.Host, c.DB.Port, c.DB.DBName, c.DB.User, c.DB.Password, nil)
}
