package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	PostgresURL   string `mapstructure:"POSTGRES_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	DefaultLang   string `mapstructure:"DEFAULT_LANG"`
	MockSeed      int64  `mapstructure:"MOCK_SEED"`
	StatsBackend  string `mapstructure:"STATS_BACKEND"`
	JoinPolicy    string `mapstructure:"JOIN_POLICY"`
	DemoPassword  string `mapstructure:"DEMO_PASSWORD"`
}

// Stats backends selectable with STATS_BACKEND.
const (
	StatsMemory   = "memory"
	StatsRedis    = "redis"
	StatsPostgres = "postgres"
)

var envFile = ".env"

// Load reads .env when present, then the process environment. Variables
// already set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("env file %s ignored: %v", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("DEFAULT_LANG", "it")
	v.SetDefault("MOCK_SEED", 0)
	v.SetDefault("STATS_BACKEND", StatsMemory)
	v.SetDefault("JOIN_POLICY", "reject")
	v.SetDefault("DEMO_PASSWORD", "alpine")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("config unmarshal error: %v", err)
	}
	return cfg
}
