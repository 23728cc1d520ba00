// Package config loads the server configuration once at startup. Nothing
// outside this package reads the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "5000"
	DefaultDBURL          = "memory://"
	DefaultMongoDatabase  = "weddingshades"
	DefaultUploadFolder   = "blog_images"
	DefaultMaxUploadBytes = 5 * 1024 * 1024
	DefaultRequestTimeout = 15 * time.Second
)

var DefaultAllowedOrigins = []string{
	"https://theweddingshades.vercel.app",
	"http://localhost:8080",
}

type Cloudinary struct {
	// URL takes precedence over the discrete credentials when set.
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

func (c Cloudinary) Configured() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

type Config struct {
	Port           string
	DBURL          string
	MongoDatabase  string
	Cloudinary     Cloudinary
	UploadFolder   string
	MaxUploadBytes int64
	AllowedOrigins []string
	RequestTimeout time.Duration
	AdminJWTSecret string
	LogLevel       string
	LogFile        string
	GinMode        string
}

// Load reads an optional .env file and then the environment. A missing .env
// is not an error; malformed numeric or duration values are.
func Load(envFiles ...string) (*Config, bool, error) {
	loadedEnvFile := godotenv.Load(envFiles...) == nil
	cfg, err := FromLookup(os.LookupEnv)
	return cfg, loadedEnvFile, err
}

// FromLookup builds a Config from any key lookup, which keeps tests free of
// process-global state.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(keys ...string) string {
		for _, key := range keys {
			if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	cfg := &Config{
		Port:          orDefault(get("PORT"), DefaultPort),
		DBURL:         orDefault(get("DB_URL", "DATABASE_URL", "MONGO_URI"), DefaultDBURL),
		MongoDatabase: orDefault(get("MONGO_DATABASE"), DefaultMongoDatabase),
		Cloudinary: Cloudinary{
			URL:       get("CLOUDINARY_URL"),
			CloudName: get("CLOUDINARY_CLOUD_NAME"),
			APIKey:    get("CLOUDINARY_API_KEY"),
			APISecret: get("CLOUDINARY_API_SECRET"),
		},
		UploadFolder:   orDefault(get("UPLOAD_FOLDER"), DefaultUploadFolder),
		MaxUploadBytes: DefaultMaxUploadBytes,
		AllowedOrigins: DefaultAllowedOrigins,
		RequestTimeout: DefaultRequestTimeout,
		AdminJWTSecret: get("ADMIN_JWT_SECRET"),
		LogLevel:       orDefault(get("LOG_LEVEL"), "info"),
		LogFile:        get("LOG_FILE"),
		GinMode:        orDefault(get("GIN_MODE"), "release"),
	}

	if v := get("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxUploadBytes = n
	}

	if v := get("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("REQUEST_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.RequestTimeout = d
	}

	if v := get("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", cfg.GinMode)
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
