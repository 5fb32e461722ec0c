package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	S3     S3Config
	Redis  RedisConfig
	Upload UploadConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	CookieName  string        `mapstructure:"cookie_name"`
}

// S3Config holds object storage settings. Provider selects the client
// implementation: "s3" (AWS SDK) or "minio" (any S3-compatible endpoint).
type S3Config struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// RedisConfig holds the session revocation store settings. An empty Addr
// disables revocation checks.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxFileSize     int64 `mapstructure:"max_file_size"`
	MultipartMemory int64 `mapstructure:"multipart_memory"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

const (
	ProviderS3    = "s3"
	ProviderMinio = "minio"
)

// Load reads configuration from an optional .env file and the environment.
// Storage credentials use the standard AWS variable names; everything else
// is prefixed with UPLOADS_.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("UPLOADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "uploads")
	v.SetDefault("auth.token_expiry", "24h")
	v.SetDefault("auth.cookie_name", "session_token")

	// Storage defaults
	v.SetDefault("s3.provider", ProviderS3)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.use_ssl", true)

	// Redis defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	// Upload defaults
	v.SetDefault("upload.max_file_size", 5*1024*1024)
	v.SetDefault("upload.multipart_memory", 32<<20)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	envBindings := map[string]string{
		"server.port":             "UPLOADS_SERVER_PORT",
		"server.read_timeout":     "UPLOADS_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "UPLOADS_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout": "UPLOADS_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":      "UPLOADS_SERVER_ENVIRONMENT",
		"auth.secret":             "UPLOADS_AUTH_SECRET",
		"auth.issuer":             "UPLOADS_AUTH_ISSUER",
		"auth.token_expiry":       "UPLOADS_AUTH_TOKEN_EXPIRY",
		"auth.cookie_name":        "UPLOADS_AUTH_COOKIE_NAME",
		"s3.provider":             "STORAGE_PROVIDER",
		"s3.region":               "AWS_REGION",
		"s3.bucket":               "S3_BUCKET_NAME",
		"s3.endpoint":             "S3_ENDPOINT",
		"s3.access_key":           "AWS_ACCESS_KEY_ID",
		"s3.secret_key":           "AWS_SECRET_ACCESS_KEY",
		"s3.use_ssl":              "S3_USE_SSL",
		"redis.addr":              "UPLOADS_REDIS_ADDR",
		"redis.password":          "UPLOADS_REDIS_PASSWORD",
		"redis.db":                "UPLOADS_REDIS_DB",
		"upload.max_file_size":    "UPLOADS_UPLOAD_MAX_FILE_SIZE",
		"upload.multipart_memory": "UPLOADS_UPLOAD_MULTIPART_MEMORY",
		"cors.allowed_origins":    "UPLOADS_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platform-provided PORT wins unless the server port is set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("UPLOADS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Auth = AuthConfig{
		Secret:      v.GetString("auth.secret"),
		Issuer:      v.GetString("auth.issuer"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
		CookieName:  v.GetString("auth.cookie_name"),
	}
	cfg.S3 = S3Config{
		Provider:  strings.ToLower(v.GetString("s3.provider")),
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		UseSSL:    v.GetBool("s3.use_ssl"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSize:     v.GetInt64("upload.max_file_size"),
		MultipartMemory: v.GetInt64("upload.multipart_memory"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if cfg.Server.Environment == "production" && cfg.Auth.Secret == "change-me-in-production" {
		log.Printf("config.Load: WARNING default auth secret in production")
	}

	return cfg, nil
}

// Validate reports every missing required storage setting at once.
func (c *Config) Validate() error {
	var missing []string
	if c.S3.Region == "" {
		missing = append(missing, "AWS_REGION")
	}
	if c.S3.AccessKey == "" {
		missing = append(missing, "AWS_ACCESS_KEY_ID")
	}
	if c.S3.SecretKey == "" {
		missing = append(missing, "AWS_SECRET_ACCESS_KEY")
	}
	if c.S3.Bucket == "" {
		missing = append(missing, "S3_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.S3.Provider {
	case ProviderS3:
	case ProviderMinio:
		if c.S3.Endpoint == "" {
			return fmt.Errorf("S3_ENDPOINT is required for storage provider %q", ProviderMinio)
		}
	default:
		return fmt.Errorf("unknown storage provider %q", c.S3.Provider)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload max file size must be positive, got %d", c.Upload.MaxFileSize)
	}
	return nil
}
