package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type config struct {
	FQDN                string
	BindIP              string
	Port                int
	Resources           string
	RedisAddr           string
	TelegramToken       string
	TelegramAPIEndpoint string
	RateLimit           int64
	RateLimitPeriod     time.Duration
	LogLevel            zapcore.Level
	LocalesDir          string
}

func (c config) ListenAddr() string {
	return net.JoinHostPort(c.BindIP, strconv.Itoa(c.Port))
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	flags.String("bindip", "127.0.0.1", "IP address the HTTP server binds to")
	flags.Int("port", 8080, "port the HTTP server listens on")
	flags.String("resources", "./resources", "directory holding page templates, favicon.ico and static files")
	flags.String("redis-addr", "", "Redis address for rate limit counters and dispatch history, in-memory when empty")
	flags.String("telegram-token", "", "Telegram bot token, the bot is not started when empty")
	flags.String("telegram-api-endpoint", "", "self-hosted Telegram Bot API endpoint")
	flags.Int64("rate-limit", 0, "dispatches allowed per client within --rate-limit-period, 0 disables rate limiting")
	flags.Duration("rate-limit-period", time.Minute, "rate limit window")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("locales-dir", "", "directory of additional yaml or json message files")

	v.SetEnvPrefix("TURBOBUNNY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.BindPFlags(flags)
}

func loadConfig(v *viper.Viper, args []string) (config, error) {
	level, err := zapcore.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return config{}, fmt.Errorf("invalid log level %q: %w", v.GetString("log-level"), err)
	}

	cfg := config{
		FQDN:                "0.0.0.0",
		BindIP:              v.GetString("bindip"),
		Port:                v.GetInt("port"),
		Resources:           v.GetString("resources"),
		RedisAddr:           v.GetString("redis-addr"),
		TelegramToken:       v.GetString("telegram-token"),
		TelegramAPIEndpoint: v.GetString("telegram-api-endpoint"),
		RateLimit:           v.GetInt64("rate-limit"),
		RateLimitPeriod:     v.GetDuration("rate-limit-period"),
		LogLevel:            level,
		LocalesDir:          v.GetString("locales-dir"),
	}
	if len(args) > 0 {
		cfg.FQDN = args[0]
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.RateLimit < 0 {
		return config{}, fmt.Errorf("invalid rate limit %d", cfg.RateLimit)
	}

	return cfg, nil
}
