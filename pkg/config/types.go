package config

import "time"

// AppConfig é a configuração completa do serviço, carregada do ambiente.
type AppConfig struct {
	// Handler seleciona a operação da Lambda.
	Handler string        `env:"HANDLER" envDefault:"list" validate:"oneof=list report notify weekly"`
	Timeout time.Duration `env:"SERVICE_TIMEOUT" envDefault:"30s" validate:"gt=0"`

	AWS     AWSConf
	Table   TableConf
	Query   QueryConf
	Storage StorageConf
	Cache   CacheConf
	Mail    MailConf
	HTTP    HTTPConf
	Queue   QueueConf
	Logging LoggingConf
	Metrics MetricsConf
}

type AWSConf struct {
	Region           string `env:"AWS_REGION" envDefault:"us-east-1" validate:"required"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"`
	S3Endpoint       string `env:"S3_ENDPOINT" validate:"omitempty,url"`
	AccessKeyID      string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY"`
}

type TableConf struct {
	Name    string `env:"TABLE_NAME" validate:"required"`
	HashKey string `env:"DYNAMODB_HASH_KEY" envDefault:"pk"`
	SortKey string `env:"DYNAMODB_SORT_KEY" envDefault:"createdAt"`
}

type QueryConf struct {
	PageSize     int    `env:"DEFAULT_PAGE_SIZE" envDefault:"100" validate:"gt=0"`
	DefaultStart string `env:"FEEDBACK_DEFAULT_START" envDefault:"2020-01-01T00:00:00Z"`
	DefaultEnd   string `env:"FEEDBACK_DEFAULT_END" envDefault:"2030-12-31T23:59:59Z"`
}

type StorageConf struct {
	Bucket     string `env:"REPORTS_BUCKET"`
	ArchiveDSN string `env:"ARCHIVE_DSN"`
}

type CacheConf struct {
	Addr     string        `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	Password string        `env:"REDIS_PASSWORD"`
	TTL      time.Duration `env:"REPORT_CACHE_TTL" envDefault:"10m"`
}

type MailConf struct {
	Notifier  string `env:"NOTIFIER" envDefault:"ses" validate:"oneof=ses smtp none"`
	Recipient string `env:"RECIPIENT_EMAIL" validate:"omitempty,email"`
	Source    string `env:"SOURCE_EMAIL" envDefault:"no-reply@seu-dominio-validado.com" validate:"email"`
	Condition string `env:"NOTIFY_CONDITION"`
	SMTP      SMTPConf
}

type SMTPConf struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
}

type HTTPConf struct {
	Port int `env:"HTTP_PORT" envDefault:"8080" validate:"gt=0,lte=65535"`
}

type QueueConf struct {
	URL string `env:"REPORT_QUEUE_URL" validate:"omitempty,url"`
}

type LoggingConf struct {
	Enabled bool   `env:"LOG_ENABLED" envDefault:"true"`
	Level   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf
}

type DatadogConf struct {
	Enabled   bool   `env:"DD_ENABLED"`
	Addr      string `env:"DD_AGENT_HOST" envDefault:"localhost:8125" validate:"required_if=Enabled true"`
	Namespace string `env:"DD_NAMESPACE" envDefault:"feedback."`
}
