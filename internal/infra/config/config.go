package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string
	HTTPAddress string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	Issuer             string
	Audience           string

	PasswordPepper string

	CookieDomain     string
	AllowedOrigins   []string
	AllowCredentials bool

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	LogLevel string
}

var required = []string{
	"DATABASE_URL",
	"ACCESS_TOKEN_SECRET",
	"REFRESH_TOKEN_SECRET",
	"ACCESS_TOKEN_TTL",
	"REFRESH_TOKEN_TTL",
	"PASSWORD_PEPPER",
	"S3_BUCKET",
	"S3_REGION",
	"S3_ENDPOINT",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range append([]string{
		"HTTP_ADDRESS", "JWT_ISSUER", "JWT_AUDIENCE", "COOKIE_DOMAIN",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "S3_PUBLIC_BASE_URL", "LOG_LEVEL",
	}, required...) {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for _, key := range required {
		if viper.GetString(key) == "" {
			return nil, fmt.Errorf("missing required config key %s", key)
		}
	}

	accessTTL, err := time.ParseDuration(viper.GetString("ACCESS_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("bad ACCESS_TOKEN_TTL: %w", err)
	}
	refreshTTL, err := time.ParseDuration(viper.GetString("REFRESH_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("bad REFRESH_TOKEN_TTL: %w", err)
	}

	var origins []string
	if raw := viper.GetString("ALLOWED_ORIGINS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &origins); err != nil {
			// plain single origin is fine too
			origins = []string{raw}
		}
	}

	return &Config{
		DatabaseURL:        viper.GetString("DATABASE_URL"),
		HTTPAddress:        viper.GetString("HTTP_ADDRESS"),
		AccessTokenSecret:  viper.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: viper.GetString("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		Issuer:             viper.GetString("JWT_ISSUER"),
		Audience:           viper.GetString("JWT_AUDIENCE"),
		PasswordPepper:     viper.GetString("PASSWORD_PEPPER"),
		CookieDomain:       viper.GetString("COOKIE_DOMAIN"),
		AllowedOrigins:     origins,
		AllowCredentials:   viper.GetBool("ALLOW_CREDENTIALS"),
		S3Bucket:           viper.GetString("S3_BUCKET"),
		S3Region:           viper.GetString("S3_REGION"),
		S3Endpoint:         viper.GetString("S3_ENDPOINT"),
		S3AccessKey:        viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:        viper.GetString("S3_SECRET_KEY"),
		S3PublicBaseURL:    viper.GetString("S3_PUBLIC_BASE_URL"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
	}, nil
}
