package utils

import (
	"errors"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppURL            string `yaml:"APP_URL" env:"APP_URL"`
	AppPort           string `yaml:"APP_PORT" env:"APP_PORT"`
	LogDir            string `yaml:"LOG_DIR" env:"LOG_DIR"`
	ReuseSessionToken bool   `yaml:"REUSE_SESSION_TOKEN" env:"REUSE_SESSION_TOKEN"`

	// Database configuration
	DBUser     string `yaml:"DB_USER" env:"DB_USER"`
	DBName     string `yaml:"DB_NAME" env:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" env:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" env:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" env:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE" env:"DB_TIMEZONE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET" env:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER" env:"JWT_ISSUER"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" env:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" env:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" env:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" env:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" env:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET" env:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION" env:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT" env:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY" env:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY" env:"AWS_SECRET_KEY"`

	// Rate limiting, Redis is optional
	RateLimitMax    int           `yaml:"RATE_LIMIT_MAX" env:"RATE_LIMIT_MAX"`
	RateLimitWindow time.Duration `yaml:"RATE_LIMIT_WINDOW" env:"RATE_LIMIT_WINDOW"`
	RedisAddr       string        `yaml:"REDIS_ADDR" env:"REDIS_ADDR"`
	RedisPassword   string        `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	RedisDB         int           `yaml:"REDIS_DB" env:"REDIS_DB"`
}

var (
	config     = defaultConfig()
	configOnce sync.Once
)

func defaultConfig() Config {
	return Config{
		AppURL:          "http://localhost:3000",
		AppPort:         "3000",
		LogDir:          "./logs",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBTimeZone:      "UTC",
		JWTIssuer:       "SLIMMOM",
		SMTPPort:        "587",
		SMTPSenderName:  "SlimMom",
		RateLimitMax:    10,
		RateLimitWindow: time.Second,
	}
}

// LoadConfig fills the package config once. Sources, lowest priority first:
// built-in defaults, config.yaml (or $CONFIG_PATH), .env, process environment.
func LoadConfig() {
	configOnce.Do(func() {
		cfg, err := ReadConfig(configPath())
		if err != nil {
			log.Printf("Error loading config: %s\n", err)
		}
		config = cfg
	})
}

// ReadConfig builds a Config from the YAML file at path and the environment.
// A missing file is not an error.
func ReadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	// godotenv.Load keeps variables that are already set in the shell
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return cfg, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// Get returns a copy of the loaded configuration.
func Get() Config {
	LoadConfig()
	return config
}

func GetConfig(key string) string {
	LoadConfig()
	switch key {
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "LOG_DIR":
		return config.LogDir
	case "REUSE_SESSION_TOKEN":
		return strconv.FormatBool(config.ReuseSessionToken)
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	default:
		return ""
	}
}
