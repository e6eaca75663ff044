package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`
	Secret     string `env:"SECRET,notEmpty"`

	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`
	RabbitmqURL   string `env:"RABBITMQ_URL,notEmpty"`

	RabbitmqOccurrenceExchange string `env:"RABBITMQ_OCCURRENCE_EXCHANGE" envDefault:"occurrences"`
	RabbitmqOccurrenceDueQueue string `env:"RABBITMQ_OCCURRENCE_DUE_QUEUE" envDefault:"occurrence-due"`

	BcryptHasherCost int      `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	ActiveReminderLimit uint          `env:"ACTIVE_REMINDER_LIMIT" envDefault:"50"`
	DispatchCronSpec    string        `env:"DISPATCH_CRON_SPEC" envDefault:"* * * * *"`
	DispatchLookback    time.Duration `env:"DISPATCH_LOOKBACK" envDefault:"5m"`
	DispatchClaimTTL    time.Duration `env:"DISPATCH_CLAIM_TTL" envDefault:"24h"`
	CalendarHorizonDays uint          `env:"CALENDAR_HORIZON_DAYS" envDefault:"90"`

	EmailEnabled             bool    `env:"EMAIL_ENABLED" envDefault:"false"`
	AwsRegion                string  `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey             string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey             string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender           string  `env:"AWS_EMAIL_SENDER"`
	AwsEmailReminderTemplate string  `env:"AWS_EMAIL_REMINDER_TEMPLATE"`
	SesMaxSendRate           float64 `env:"SES_MAX_SEND_RATE" envDefault:"14"`

	SentryDsn string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("invalid BCRYPT_HASHER_COST value: %d", c.BcryptHasherCost)
	}
	if c.DispatchLookback <= 0 {
		return fmt.Errorf("DISPATCH_LOOKBACK must be positive")
	}
	if c.DispatchClaimTTL <= c.DispatchLookback {
		return fmt.Errorf("DISPATCH_CLAIM_TTL must be longer than DISPATCH_LOOKBACK")
	}
	if c.CalendarHorizonDays == 0 {
		return fmt.Errorf("CALENDAR_HORIZON_DAYS must be positive")
	}
	if c.SesMaxSendRate <= 0 {
		return fmt.Errorf("SES_MAX_SEND_RATE must be positive")
	}
	if c.EmailEnabled && (c.AwsEmailSender == "" || c.AwsEmailReminderTemplate == "") {
		return fmt.Errorf("AWS_EMAIL_SENDER and AWS_EMAIL_REMINDER_TEMPLATE must be set when EMAIL_ENABLED is true")
	}
	return nil
}
