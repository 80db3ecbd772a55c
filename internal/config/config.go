package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers accepted in storage.driver.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Storage struct {
		Driver string
		Path   string
	}
	Database struct {
		Path string
	}
	S3 struct {
		Bucket   string
		Key      string
		Region   string
		Endpoint string
	}
	AWS struct {
		Profile string
	}
	Session struct {
		Secret string
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetEnvPrefix("USERREG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "data/users.json")
	v.SetDefault("database.path", "data/users.db")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.key", "users.json")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("session.secret", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("session secret is required")
	}
	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required")
		}
	case DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
