package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raywall/feedback-service/delivery"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/metrics"
	"github.com/raywall/feedback-service/pkg/rules"
	"github.com/raywall/feedback-service/report"
	"github.com/rs/zerolog"
)

// Subject é o assunto do e-mail de relatório.
const Subject = "Relatório semanal de feedbacks"

var (
	// ErrInvalidInput é o erro de cliente (HTTP 400).
	ErrInvalidInput = feedback.ErrInvalidInput
	// ErrNotConfigured indica que a operação depende de um adaptador ausente.
	ErrNotConfigured = errors.New("service: dependency not configured")
)

// QueryEngine é implementado por *feedback.Engine.
type QueryEngine interface {
	Query(ctx context.Context, p feedback.Params) (*feedback.Page, error)
	All(ctx context.Context, p feedback.Params) ([]feedback.Record, error)
}

// Service orquestra as operações de listagem, relatório e notificação.
type Service struct {
	engine    QueryEngine
	store     delivery.ObjectStore
	notifier  delivery.Notifier
	channel   string
	condition *rules.Rule
	recorder  *metrics.Recorder
	now       func() time.Time
}

type Option func(*Service)

func WithStore(store delivery.ObjectStore) Option {
	return func(s *Service) { s.store = store }
}

// WithNotifier define o notificador; channel identifica o meio nas métricas.
func WithNotifier(n delivery.Notifier, channel string) Option {
	return func(s *Service) {
		s.notifier = n
		s.channel = channel
	}
}

// WithCondition define a regra CEL avaliada antes de cada notificação.
func WithCondition(rule *rules.Rule) Option {
	return func(s *Service) { s.condition = rule }
}

func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(engine QueryEngine, opts ...Option) *Service {
	s := &Service{engine: engine, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportResult descreve um relatório gerado e gravado.
type ReportResult struct {
	ReportKey string         `json:"reportKey"`
	Total     int            `json:"total"`
	Report    *report.Report `json:"-"`
	Content   string         `json:"-"`
}

// NotifyRequest é a entrada da notificação.
type NotifyRequest struct {
	ReportKey string         `json:"reportKey"`
	Input     map[string]any `json:"-"`
}

type NotifyResult struct {
	ReportKey string `json:"reportKey"`
	Sent      bool   `json:"sent"`
}

// WeeklyResult é o resumo do pipeline semanal.
type WeeklyResult struct {
	ReportKey string `json:"reportKey"`
	Total     int    `json:"total"`
	Notified  bool   `json:"notified"`
}

// List executa uma página da consulta.
func (s *Service) List(ctx context.Context, p feedback.Params) (*feedback.Page, error) {
	start := time.Now()
	page, err := s.engine.Query(ctx, p)

	items := 0
	if page != nil {
		items = page.Count
	}
	s.recorder.QueryCompleted(p.Urgency, items, time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return page, nil
}

// GenerateReport agrega o lote, renderiza e grava o relatório do dia.
func (s *Service) GenerateReport(ctx context.Context, records []feedback.Record) (*ReportResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: object store", ErrNotConfigured)
	}

	r := report.Aggregate(ctx, records, s.now())
	content := report.Render(r)
	key := report.ObjectName(r.GeneratedAt)

	if err := s.store.Store(ctx, key, content); err != nil {
		return nil, fmt.Errorf("erro ao gravar relatório: %w", err)
	}
	s.recorder.ReportGenerated(r.Total, r.InvalidRatings, r.Average)

	zerolog.Ctx(ctx).Info().Str("report_key", key).Int("total", r.Total).Msg("report generated")
	return &ReportResult{ReportKey: key, Total: r.Total, Report: r, Content: content}, nil
}

// Retrieve devolve o conteúdo de um relatório gravado.
func (s *Service) Retrieve(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: reportKey is required", ErrInvalidInput)
	}
	if s.store == nil {
		return "", fmt.Errorf("%w: object store", ErrNotConfigured)
	}
	return s.store.Retrieve(ctx, key)
}

// Notify busca o relatório e o envia se a condição de notificação aprovar.
func (s *Service) Notify(ctx context.Context, req NotifyRequest) (*NotifyResult, error) {
	content, err := s.Retrieve(ctx, req.ReportKey)
	if err != nil {
		return nil, err
	}

	sent, err := s.notify(ctx, req.ReportKey, content, req.Input, nil)
	if err != nil {
		return nil, err
	}
	return &NotifyResult{ReportKey: req.ReportKey, Sent: sent}, nil
}

// RunWeekly percorre todas as páginas do intervalo, gera o relatório e
// notifica.
func (s *Service) RunWeekly(ctx context.Context, p feedback.Params) (*WeeklyResult, error) {
	p.NextToken = nil
	records, err := s.engine.All(ctx, p)
	if err != nil {
		return nil, err
	}

	res, err := s.GenerateReport(ctx, records)
	if err != nil {
		return nil, err
	}

	sent, err := s.notify(ctx, res.ReportKey, res.Content, map[string]any{
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
		"urgency":   p.Urgency,
	}, statsOf(res.Report))
	if err != nil {
		return nil, err
	}

	return &WeeklyResult{ReportKey: res.ReportKey, Total: res.Total, Notified: sent}, nil
}

func (s *Service) notify(ctx context.Context, key, content string, input, stats map[string]any) (bool, error) {
	log := zerolog.Ctx(ctx).With().Str("report_key", key).Logger()

	if s.notifier == nil {
		return false, fmt.Errorf("%w: notifier", ErrNotConfigured)
	}

	if input == nil {
		input = map[string]any{}
	}
	if stats == nil {
		stats = map[string]any{}
	}
	ok, err := s.condition.EvaluateBool(map[string]any{
		"input":  input,
		"stats":  stats,
		"report": map[string]any{"key": key, "content": content, "size": len(content)},
	})
	if err != nil {
		return false, fmt.Errorf("erro ao avaliar condição de notificação: %w", err)
	}
	if !ok {
		log.Info().Str("condition", s.condition.String()).Msg("notification skipped by condition")
		return false, nil
	}

	err = s.notifier.Notify(ctx, Subject, content)
	s.recorder.NotificationSent(s.channel, err)
	if err != nil {
		return false, fmt.Errorf("erro ao enviar notificação: %w", err)
	}
	return true, nil
}

func statsOf(r *report.Report) map[string]any {
	stats := map[string]any{
		"total":          r.Total,
		"invalidRatings": r.InvalidRatings,
		"alta":           r.Urgency.Alta,
		"media":          r.Urgency.Media,
		"baixa":          r.Urgency.Baixa,
		"days":           len(r.Days),
	}
	if r.Average != nil {
		stats["average"] = *r.Average
	}
	return stats
}
