package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *AppConfig {
	return &AppConfig{
		Handler: "weekly",
		Timeout: 30 * time.Second,
		AWS:     AWSConf{Region: "us-east-1"},
		Table:   TableConf{Name: "feedbacks", HashKey: "pk", SortKey: "createdAt"},
		Query:   QueryConf{PageSize: 100, DefaultStart: "2020-01-01T00:00:00Z", DefaultEnd: "2030-12-31T23:59:59Z"},
		Storage: StorageConf{Bucket: "reports"},
		Mail: MailConf{
			Notifier:  "ses",
			Recipient: "time@example.com",
			Source:    "no-reply@example.com",
		},
		HTTP:    HTTPConf{Port: 8080},
		Logging: LoggingConf{Enabled: true, Level: "info", Format: "json"},
	}
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{name: "Valid Config", mutate: func(c *AppConfig) {}},
		{
			name:    "Missing Table",
			mutate:  func(c *AppConfig) { c.Table.Name = "" },
			wantErr: "AppConfig.Table.Name",
		},
		{
			name:    "Unknown Handler",
			mutate:  func(c *AppConfig) { c.Handler = "delete" },
			wantErr: "oneof",
		},
		{
			name:    "Invalid Page Size",
			mutate:  func(c *AppConfig) { c.Query.PageSize = 0 },
			wantErr: "PageSize",
		},
		{
			name:    "Report Without Bucket",
			mutate:  func(c *AppConfig) { c.Storage.Bucket = "" },
			wantErr: "REPORTS_BUCKET",
		},
		{
			name: "List Without Bucket",
			mutate: func(c *AppConfig) {
				c.Handler = "list"
				c.Storage.Bucket = ""
			},
		},
		{
			name:    "Notify Without Recipient",
			mutate:  func(c *AppConfig) { c.Mail.Recipient = "" },
			wantErr: "RECIPIENT_EMAIL",
		},
		{
			name: "Notifier None Without Recipient",
			mutate: func(c *AppConfig) {
				c.Mail.Notifier = "none"
				c.Mail.Recipient = ""
			},
		},
		{
			name:    "SMTP Without Host",
			mutate:  func(c *AppConfig) { c.Mail.Notifier = "smtp" },
			wantErr: "SMTP_HOST",
		},
		{
			name:    "Half Static Credentials",
			mutate:  func(c *AppConfig) { c.AWS.AccessKeyID = "test" },
			wantErr: "AWS_SECRET_ACCESS_KEY",
		},
		{
			name:    "Datadog Without Addr",
			mutate:  func(c *AppConfig) { c.Metrics.Datadog.Enabled = true },
			wantErr: "Addr",
		},
		{
			name:    "Inverted Default Range",
			mutate:  func(c *AppConfig) { c.Query.DefaultStart = "2031-01-01T00:00:00Z" },
			wantErr: "FEEDBACK_DEFAULT_START",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validator.Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
