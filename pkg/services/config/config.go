package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSESRegion       = "ap-southeast-2"
	DefaultMarkerKey       = "state/last-run.json"
	DefaultRunTimeout      = 10 * time.Minute
	DefaultMaxEventAge     = 6 * time.Hour
	DefaultThresholdMedium = 10.0
	DefaultThresholdHigh   = 100.0
)

// Config carries everything the job reads from the environment. It is
// built once per run and passed into every service constructor.
type Config struct {
	SenderEmail     string        `mapstructure:"sender_email"`
	RecipientEmails []string      `mapstructure:"-"`
	SESRegion       string        `mapstructure:"aws_region_ses"`
	StateBucket     string        `mapstructure:"s3_bucket_name"`
	MarkerKey       string        `mapstructure:"report_marker_key"`
	Stage           string        `mapstructure:"report_stage"`
	RunTimeout      time.Duration `mapstructure:"report_run_timeout"`
	MaxEventAge     time.Duration `mapstructure:"report_max_event_age"`
	ThresholdMedium float64       `mapstructure:"report_threshold_medium"`
	ThresholdHigh   float64       `mapstructure:"report_threshold_high"`
}

// Load reads the job configuration from environment variables. The key
// names match the deployed job's environment contract.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("aws_region_ses", DefaultSESRegion)
	v.SetDefault("report_marker_key", DefaultMarkerKey)
	v.SetDefault("report_run_timeout", DefaultRunTimeout)
	v.SetDefault("report_max_event_age", DefaultMaxEventAge)
	v.SetDefault("report_threshold_medium", DefaultThresholdMedium)
	v.SetDefault("report_threshold_high", DefaultThresholdHigh)

	for _, key := range []string{
		"sender_email", "recipient_emails", "aws_region_ses", "s3_bucket_name",
		"report_marker_key", "report_stage", "report_run_timeout",
		"report_max_event_age", "report_threshold_medium", "report_threshold_high",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse job config: %w", err)
	}

	cfg.RecipientEmails = splitRecipients(v.GetString("recipient_emails"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on missing required settings, before any AWS call
// is issued.
func (c *Config) Validate() error {
	var missing []string
	if c.SenderEmail == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if len(c.RecipientEmails) == 0 {
		missing = append(missing, "RECIPIENT_EMAILS")
	}
	if c.StateBucket == "" {
		missing = append(missing, "S3_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.ThresholdHigh < c.ThresholdMedium {
		return fmt.Errorf(
			"REPORT_THRESHOLD_HIGH (%.2f) must not be below REPORT_THRESHOLD_MEDIUM (%.2f)",
			c.ThresholdHigh, c.ThresholdMedium,
		)
	}
	return nil
}

func splitRecipients(raw string) []string {
	var recipients []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}
