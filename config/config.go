package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/pgabrielsw/gridline-v4/global"
	"github.com/spf13/viper"
)

// ConfigPath is where InitConfig looks for the YAML config unless
// GRIDLINE_CONFIG points elsewhere.
const ConfigPath = "config/config.yaml"

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	CORS struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"cors"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`

	// File is the config file that was read, empty when defaults were used.
	File string `mapstructure:"-"`
}

type DatabaseConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	Sslmode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var AppConfig *Config

func InitConfig() {
	path := ConfigPath
	if p := os.Getenv("GRIDLINE_CONFIG"); p != "" {
		path = p
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.File == "" {
		log.Printf("Config file %s not found, using defaults", path)
	}
	AppConfig = cfg

	if cfg.Database.Enabled {
		initDB()
	}
	if cfg.Redis.Enabled {
		initRedis()
	}
}

// Load reads the YAML file at path on top of the built-in defaults. A
// missing file is not an error and leaves Config.File empty. Keys can be
// overridden with GRIDLINE_* variables, e.g. GRIDLINE_APP_PORT or
// GRIDLINE_DATABASE_HOST.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRIDLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		found = false
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if found {
		cfg.File = v.ConfigFileUsed()
	}

	// FRONTEND_ORIGINS predates the GRIDLINE_ prefix and still wins.
	if raw := os.Getenv("FRONTEND_ORIGINS"); raw != "" {
		cfg.CORS.Origins = FrontendOrigins(raw)
	}

	return cfg, nil
}

// Close releases whatever datastores InitConfig opened.
func Close() {
	if global.DB != nil {
		if sqlDB, err := global.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}
		global.DB = nil
	}
	if global.RedisDB != nil {
		if err := global.RedisDB.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
		global.RedisDB = nil
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridline-backend")
	v.SetDefault("app.port", ":8080")
	v.SetDefault("cors.origins", []string{"http://localhost:4200", "http://localhost:8080"})

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "gridline")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "gridline")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// Addr turns the configured port into a listen address.
func (c *Config) Addr() string {
	port := strings.TrimSpace(c.App.Port)
	switch {
	case port == "":
		return ":8080"
	case strings.Contains(port, ":"):
		return port
	default:
		return ":" + port
	}
}

// FrontendOrigins splits a comma separated origin list, dropping blanks.
// An input with no usable entries yields a wildcard.
func FrontendOrigins(raw string) []string {
	var origins []string
	for _, v := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
