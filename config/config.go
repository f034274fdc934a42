package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	GinMode   string
	FeOrigins []string
	Database  DatabaseConfig
	Storage   StorageConfig
}

type DatabaseConfig struct {
	User string
	Pass string
	Host string
	Name string
	TLS  bool
}

type StorageConfig struct {
	// Bucket is the firebase storage bucket holding post images
	Bucket string
}

// Load reads configuration from the environment (plus a local .env file when
// present) and validates the required values up front
func Load() (*Config, error) {
	// .env is a dev convenience; absence is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("FE_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_TLS", true)

	cfg := &Config{
		Port:      v.GetString("PORT"),
		GinMode:   v.GetString("GIN_MODE"),
		FeOrigins: strings.Split(v.GetString("FE_ORIGINS"), ";"),
		Database: DatabaseConfig{
			User: v.GetString("DB_USER"),
			Pass: v.GetString("DB_PASS"),
			Host: v.GetString("DB_HOST"),
			Name: v.GetString("DB_NAME"),
			TLS:  v.GetBool("DB_TLS"),
		},
		Storage: StorageConfig{
			Bucket: v.GetString("STORAGE_BUCKET"),
		},
	}

	for envVar, val := range map[string]string{
		"DB_USER":        cfg.Database.User,
		"DB_PASS":        cfg.Database.Pass,
		"DB_HOST":        cfg.Database.Host,
		"DB_NAME":        cfg.Database.Name,
		"STORAGE_BUCKET": cfg.Storage.Bucket,
	} {
		if val == "" {
			return nil, fmt.Errorf("$%v must be set", envVar)
		}
	}
	return cfg, nil
}
