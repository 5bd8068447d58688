package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Debug   bool   `yaml:"debug"`
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL             string `yaml:"ttl"`
	Length          int    `yaml:"length"`
	BypassCode      string `yaml:"bypass_code"`
	RequireForLogin bool   `yaml:"require_for_login"`
}

type MailConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ChatConfig struct {
	APIKey  string   `yaml:"api_key"`
	BaseURL string   `yaml:"base_url"`
	Models  []string `yaml:"models"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Mail     MailConfig     `yaml:"mail"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Chat     ChatConfig     `yaml:"chat"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Log      LogConfig      `yaml:"log"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

type Config struct {
	Port    string
	GinMode string
	Debug   bool
	BaseURL string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	OTPTTL             time.Duration
	OTPLength          int
	OTPBypassCode      string
	OTPRequireForLogin bool

	MailAPIURL    string
	MailAPIKey    string
	MailFromEmail string
	MailFromName  string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	ChatAPIKey  string
	ChatBaseURL string
	ChatModels  []string

	CasbinModelPath string

	LogLevel  string
	LogFormat string

	SentryDSN         string
	SentryEnvironment string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// secrets that should not live in the file.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	tokenTTL, err := time.ParseDuration(file.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(file.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	cfg := &Config{
		Port:    fmt.Sprintf("%d", file.App.Port),
		GinMode: file.App.GinMode,
		Debug:   file.App.Debug,
		BaseURL: file.App.BaseURL,

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       file.Redis.DB,

		JWTSecret: env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer: file.JWT.Issuer,
		TokenTTL:  tokenTTL,

		OTPTTL:             otpTTL,
		OTPLength:          file.OTP.Length,
		OTPBypassCode:      file.OTP.BypassCode,
		OTPRequireForLogin: file.OTP.RequireForLogin,

		MailAPIURL:    env("MAILTRAP_API_URL", file.Mail.APIURL),
		MailAPIKey:    env("MAILTRAP_API_KEY", file.Mail.APIKey),
		MailFromEmail: env("MAILTRAP_FROM_EMAIL", file.Mail.FromEmail),
		MailFromName:  file.Mail.FromName,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", file.Twilio.FromNumber),

		ChatAPIKey:  env("OPENROUTER_API_KEY", file.Chat.APIKey),
		ChatBaseURL: file.Chat.BaseURL,
		ChatModels:  file.Chat.Models,

		CasbinModelPath: file.Casbin.ModelPath,

		LogLevel:  file.Log.Level,
		LogFormat: file.Log.Format,

		SentryDSN:         env("SENTRY_DSN", file.Sentry.DSN),
		SentryEnvironment: env("SENTRY_ENVIRONMENT", file.Sentry.Environment),
	}

	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}
	if cfg.ChatBaseURL == "" {
		cfg.ChatBaseURL = "https://openrouter.ai/api/v1"
	}

	// A bypass code in release mode defeats the point of the challenge.
	if cfg.GinMode == "release" {
		cfg.OTPBypassCode = ""
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
