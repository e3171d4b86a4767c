package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	GoogleAPI GoogleAPIConfig
	SMTP      SMTPConfig
	Fallback  FallbackConfig
	LogLevel  string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type GoogleAPIConfig struct {
	ClientID     string
	ClientSecret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// FallbackConfig controls ad-hoc meeting room links used when the
// primary calendar provider is unavailable.
type FallbackConfig struct {
	MeetingBaseURL string
}

var (
	instance *Config
	once     sync.Once
)

// Load reads .env (if present) and the environment into the singleton.
func Load() (*Config, error) {
	var err error
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		v.SetDefault("server.host", "0.0.0.0")
		v.SetDefault("server.port", 7070)
		v.SetDefault("database.host", "localhost")
		v.SetDefault("database.port", 5432)
		v.SetDefault("database.user", "postgres")
		v.SetDefault("database.password", "postgres")
		v.SetDefault("database.dbname", "cv_review")
		v.SetDefault("database.sslmode", "disable")
		v.SetDefault("redis.addr", "localhost:6379")
		v.SetDefault("redis.password", "")
		v.SetDefault("redis.db", 0)
		v.SetDefault("jwt.secret", "changeme")
		v.SetDefault("smtp.host", "localhost")
		v.SetDefault("smtp.port", 587)
		v.SetDefault("smtp.from", "no-reply@cv-review.local")
		v.SetDefault("fallback.meeting_base_url", "https://meet.jit.si")
		v.SetDefault("log.level", "info")

		instance = &Config{
			Server: ServerConfig{
				Host: v.GetString("server.host"),
				Port: v.GetInt("server.port"),
			},
			Database: DatabaseConfig{
				Host:     v.GetString("database.host"),
				Port:     v.GetInt("database.port"),
				User:     v.GetString("database.user"),
				Password: v.GetString("database.password"),
				DBName:   v.GetString("database.dbname"),
				SSLMode:  v.GetString("database.sslmode"),
			},
			Redis: RedisConfig{
				Addr:     v.GetString("redis.addr"),
				Password: v.GetString("redis.password"),
				DB:       v.GetInt("redis.db"),
			},
			JWT: JWTConfig{
				Secret: v.GetString("jwt.secret"),
			},
			GoogleAPI: GoogleAPIConfig{
				ClientID:     v.GetString("google.client_id"),
				ClientSecret: v.GetString("google.client_secret"),
			},
			SMTP: SMTPConfig{
				Host:     v.GetString("smtp.host"),
				Port:     v.GetInt("smtp.port"),
				User:     v.GetString("smtp.user"),
				Password: v.GetString("smtp.password"),
				From:     v.GetString("smtp.from"),
			},
			Fallback: FallbackConfig{
				MeetingBaseURL: v.GetString("fallback.meeting_base_url"),
			},
			LogLevel: v.GetString("log.level"),
		}
	})
	if instance == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return instance, err
}

// Get returns the loaded config. Panics when called before Load.
func Get() *Config {
	if instance == nil {
		panic("config.Get called before config.Load")
	}
	return instance
}

// GetSafe returns the config and whether it has been loaded.
func GetSafe() (*Config, bool) {
	return instance, instance != nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
