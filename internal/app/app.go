// Package app monta o serviço de feedbacks a partir da configuração.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/raywall/feedback-service/delivery"
	"github.com/raywall/feedback-service/dyndb"
	"github.com/raywall/feedback-service/envloader"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/awscfg"
	"github.com/raywall/feedback-service/pkg/config"
	"github.com/raywall/feedback-service/pkg/config/injector"
	"github.com/raywall/feedback-service/pkg/graphql"
	"github.com/raywall/feedback-service/pkg/logger"
	"github.com/raywall/feedback-service/pkg/metrics"
	"github.com/raywall/feedback-service/pkg/observability"
	"github.com/raywall/feedback-service/pkg/rules"
	"github.com/raywall/feedback-service/pkg/service"
	"github.com/raywall/feedback-service/pkg/transport"
	"github.com/raywall/feedback-service/report"
	"github.com/rs/zerolog/log"
)

// ServiceName identifica o serviço nos logs e métricas.
const ServiceName = "feedback-service"

// App reúne os componentes montados.
type App struct {
	Config  *config.AppConfig
	Clients *awscfg.Clients
	Table   dyndb.Store[feedback.Item]
	Engine  *feedback.Engine
	Service *service.Service
	GraphQL *graphql.GraphQLEngine

	closers []func() error
}

// New carrega a configuração (ambiente e arquivos .env), cria os clientes
// AWS e monta a aplicação.
func New(ctx context.Context, files ...string) (*App, error) {
	// A região e as credenciais são lidas antes do restante para que os
	// placeholders ${ssm.*} e ${secret.*} possam ser resolvidos.
	var awsConf config.AWSConf
	if err := envloader.LoadFiles(&awsConf, files...); err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	awsCfg, err := awscfg.Load(ctx, awsConf)
	if err != nil {
		return nil, err
	}
	clients := awscfg.NewClients(awsCfg, awsConf)

	inj := injector.New(injector.WithSSM(clients.SSM), injector.WithSecrets(clients.SecretsManager))
	cfg, err := config.Load(ctx, inj, files...)
	if err != nil {
		return nil, err
	}

	logger.Configure(cfg.Logging, ServiceName)
	return Build(ctx, cfg, clients)
}

// Build monta a aplicação a partir de uma configuração já validada.
func Build(ctx context.Context, cfg *config.AppConfig, clients *awscfg.Clients) (*App, error) {
	a := &App{Config: cfg, Clients: clients}

	a.Table = dyndb.New[feedback.Item](clients.DynamoDB, dyndb.TableConfig[feedback.Item]{
		TableName: cfg.Table.Name,
		HashKey:   cfg.Table.HashKey,
		SortKey:   cfg.Table.SortKey,
	})
	a.Engine = feedback.NewEngine(a.Table, feedback.Config{
		PageSize:     cfg.Query.PageSize,
		DefaultStart: cfg.Query.DefaultStart,
		DefaultEnd:   cfg.Query.DefaultEnd,
	})

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	if c, ok := provider.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}
	recorder := metrics.NewRecorder(provider, "service:"+ServiceName, "handler:"+cfg.Handler)

	rm, err := rules.NewRuleManager()
	if err != nil {
		return nil, err
	}
	condition, err := rm.Compile(cfg.Mail.Condition)
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_CONDITION inválida: %w", err)
	}

	opts := []service.Option{
		service.WithNotifier(newNotifier(cfg.Mail, clients), cfg.Mail.Notifier),
		service.WithCondition(condition),
		service.WithRecorder(recorder),
	}

	objects, err := a.objectStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if objects != nil {
		opts = append(opts, service.WithStore(objects))
	}

	a.Service = service.New(a.Engine, opts...)

	a.GraphQL, err = graphql.NewGraphQLEngine(a.Service)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("erro ao montar schema GraphQL: %w", err)
	}

	log.Info().
		Str("handler", cfg.Handler).
		Str("table", cfg.Table.Name).
		Str("bucket", cfg.Storage.Bucket).
		Str("notifier", cfg.Mail.Notifier).
		Msg("aplicação inicializada")
	return a, nil
}

// objectStore monta S3, cache Redis e arquivo Postgres conforme a
// configuração. Sem bucket não há armazenamento de relatórios.
func (a *App) objectStore(ctx context.Context) (delivery.ObjectStore, error) {
	cfg := a.Config
	if cfg.Storage.Bucket == "" {
		return nil, nil
	}

	var objects delivery.ObjectStore = delivery.NewS3Store(a.Clients.S3, cfg.Storage.Bucket, cfg.AWS.Region, report.ContentType)

	if cfg.Cache.Addr != "" {
		rc := delivery.NewRedisClient(cfg.Cache.Addr, cfg.Cache.Password)
		a.closers = append(a.closers, rc.Close)
		objects = delivery.NewCachedStore(objects, rc, cfg.Cache.TTL)
	}

	if cfg.Storage.ArchiveDSN != "" {
		archive, db, err := delivery.OpenArchive(ctx, cfg.Storage.ArchiveDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		objects = delivery.NewTee(objects, archive)
	}

	return objects, nil
}

func newNotifier(cfg config.MailConf, clients *awscfg.Clients) delivery.Notifier {
	switch cfg.Notifier {
	case "smtp":
		dialer := delivery.NewSMTPDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
		return delivery.NewSMTPNotifier(dialer, cfg.Source, cfg.Recipient)
	case "none":
		return delivery.NopNotifier{}
	default:
		return delivery.NewSESNotifier(clients.SES, cfg.Source, cfg.Recipient)
	}
}

// TransportOptions devolve as opções dos adaptadores Lambda e HTTP.
func (a *App) TransportOptions() transport.Options {
	return transport.Options{
		Handler:   a.Config.Handler,
		Timeout:   a.Config.Timeout,
		Recipient: a.Config.Mail.Recipient,
		GraphQL:   a.GraphQL,
	}
}

// Close libera conexões abertas (Redis, Postgres, statsd).
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
