package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	DBDriver string
	DBDSN    string

	StorageDriver    string
	StorageLocalRoot string
	StoragePublicURL string
	S3Region         string
	S3Bucket         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	S3PresignTTL     time.Duration

	PlaceholderImageURL string
	CORSOrigin          string
	MaxUploadBytes      int64
	SessionTTL          time.Duration
}

// Load reads configuration from defaults and environment variables.
func Load() *Config {
	cfg, _ := LoadFile("")
	return cfg
}

// LoadFile is Load with an optional config file (json, yaml, toml) layered
// under the environment.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fromViper(v), fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return fromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("env", "development")
	v.SetDefault("read_timeout", 10)
	v.SetDefault("write_timeout", 10)

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "data/db/survey.db")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_root", "data/files")
	v.SetDefault("storage.public_url", "/files")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.presign_ttl", "15m")

	v.SetDefault("placeholder_image_url", "/static/floorplan-placeholder.svg")
	v.SetDefault("cors_origin", "*")
	v.SetDefault("max_upload_bytes", 20<<20)
	v.SetDefault("session_ttl", "30m")
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:         v.GetString("port"),
		Environment:  v.GetString("env"),
		ReadTimeout:  v.GetInt("read_timeout"),
		WriteTimeout: v.GetInt("write_timeout"),

		DBDriver: v.GetString("db.driver"),
		DBDSN:    v.GetString("db.dsn"),

		StorageDriver:    v.GetString("storage.driver"),
		StorageLocalRoot: v.GetString("storage.local_root"),
		StoragePublicURL: v.GetString("storage.public_url"),
		S3Region:         v.GetString("s3.region"),
		S3Bucket:         v.GetString("s3.bucket"),
		S3Endpoint:       v.GetString("s3.endpoint"),
		S3AccessKey:      v.GetString("s3.access_key"),
		S3SecretKey:      v.GetString("s3.secret_key"),
		S3PresignTTL:     v.GetDuration("s3.presign_ttl"),

		PlaceholderImageURL: v.GetString("placeholder_image_url"),
		CORSOrigin:          v.GetString("cors_origin"),
		MaxUploadBytes:      v.GetInt64("max_upload_bytes"),
		SessionTTL:          v.GetDuration("session_ttl"),
	}
}
