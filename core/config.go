package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		BodyLimit       string
		AllowOrigins    []string
	}

	DatabaseConfig struct {
		URI     string
		Name    string
		Timeout time.Duration
	}

	StorageConfig struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
		PublicURL string // base URL objects are served from; defaults to the endpoint
	}

	CacheConfig struct {
		TTL             time.Duration
		CleanupInterval time.Duration
	}

	// InstitutionConfig holds the institution settings used until they are saved from the API.
	InstitutionConfig struct {
		Name  string
		Email string
		Phone string
	}

	Config struct {
		Debug        bool
		TestMode     bool
		Env          string
		Build        string
		AppName      string
		RollbarToken string

		Server      ServerConfig
		Database    DatabaseConfig
		Storage     StorageConfig
		Cache       CacheConfig
		Institution InstitutionConfig
	}
)

// NewConfig loads the configuration from the environment.
//
// ENV selects the environment (DEV by default, TEST, QA, PROD) and is also the prefix of every variable,
// eg. PROD_DATABASE_URI. A "config/.env.<env>" file is loaded first when it exists.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "z1academic")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 10*time.Second)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.bodyLimit", "20M")
	v.SetDefault("server.allowOrigins", []string{"*"})

	v.SetDefault("database.uri", "") // eg. mongodb://localhost:27017
	v.SetDefault("database.name", "z1academic")
	v.SetDefault("database.timeout", 10*time.Second)

	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.accessKey", "minioadmin")
	v.SetDefault("storage.secretKey", "minioadmin")
	v.SetDefault("storage.bucket", "z1academic")
	v.SetDefault("storage.useSSL", false)
	v.SetDefault("storage.publicURL", "")

	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.cleanupInterval", 20*time.Minute)

	v.SetDefault("institution.name", "Z1 Academic")
	v.SetDefault("institution.email", "admin@z1academic.test")
	v.SetDefault("institution.phone", "+2340000000000")

	env := strings.ToUpper(CleanString(os.Getenv("ENV"))) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}

	loadDotEnv(env)

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ReadTimeout:     v.GetDuration("server.readTimeout"),
			WriteTimeout:    v.GetDuration("server.writeTimeout"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			BodyLimit:       v.GetString("server.bodyLimit"),
			AllowOrigins:    v.GetStringSlice("server.allowOrigins"),
		},
		Database: DatabaseConfig{
			URI:     v.GetString("database.uri"),
			Name:    v.GetString("database.name"),
			Timeout: v.GetDuration("database.timeout"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("storage.endpoint"),
			AccessKey: v.GetString("storage.accessKey"),
			SecretKey: v.GetString("storage.secretKey"),
			Bucket:    v.GetString("storage.bucket"),
			UseSSL:    v.GetBool("storage.useSSL"),
			PublicURL: v.GetString("storage.publicURL"),
		},
		Cache: CacheConfig{
			TTL:             v.GetDuration("cache.ttl"),
			CleanupInterval: v.GetDuration("cache.cleanupInterval"),
		},
		Institution: InstitutionConfig{
			Name:  v.GetString("institution.name"),
			Email: v.GetString("institution.email"),
			Phone: v.GetString("institution.phone"),
		},
	}
}

// loadDotEnv loads config/.env.<env> if it exists (ignored if it does not).
// CONFIG_DIR overrides the "config" directory.
func loadDotEnv(env string) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
}
