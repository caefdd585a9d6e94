package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config keeps runtime settings for the bot. Every deadline, window and
// payment figure is tunable from the environment.
type Config struct {
	TelegramToken string  `env:"BOT_TOKEN,required,notEmpty"`
	DatabasePath  string  `env:"DATABASE_PATH" envDefault:"course_bot.db"`
	AdminIDs      []int64 `env:"ADMIN_IDS" envSeparator:","`

	TaskDeadline         time.Duration `env:"TASK_DEADLINE" envDefault:"24h"`
	PaymentWarningWindow time.Duration `env:"PAYMENT_WARNING_WINDOW" envDefault:"72h"`
	DailyBroadcastTime   string        `env:"DAILY_BROADCAST_TIME" envDefault:"18:00"`

	SubscriptionMonths    int   `env:"SUBSCRIPTION_MONTHS" envDefault:"1"`
	PenaltyThreshold      int   `env:"PENALTY_THRESHOLD" envDefault:"3"`
	PenaltyAmount         int64 `env:"PENALTY_AMOUNT" envDefault:"50000"`
	BasePayment           int64 `env:"BASE_PAYMENT" envDefault:"200000"`
	RepeatThresholdNotice bool  `env:"REPEAT_THRESHOLD_NOTICE" envDefault:"true"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TaskDeadline <= 0 {
		return cfg, fmt.Errorf("TASK_DEADLINE must be positive")
	}
	if cfg.PaymentWarningWindow <= 0 {
		return cfg, fmt.Errorf("PAYMENT_WARNING_WINDOW must be positive")
	}
	if cfg.PenaltyThreshold < 1 {
		return cfg, fmt.Errorf("PENALTY_THRESHOLD must be at least 1")
	}
	if _, _, err := ParseTimeOfDay(cfg.DailyBroadcastTime); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// IsAdmin reports whether the given Telegram id belongs to an admin.
func (c Config) IsAdmin(id int64) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}

// ParseTimeOfDay validates an HH:MM wall-clock time string.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}
