package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raywall/feedback-service/delivery"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/metrics"
	"github.com/raywall/feedback-service/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Query(ctx context.Context, p feedback.Params) (*feedback.Page, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedback.Page), args.Error(1)
}

func (m *mockEngine) All(ctx context.Context, p feedback.Params) ([]feedback.Record, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Record), args.Error(1)
}

type memStore struct {
	objects map[string]string
	err     error
}

func (m *memStore) Store(ctx context.Context, name, content string) error {
	if m.err != nil {
		return m.err
	}
	m.objects[name] = content
	return nil
}

func (m *memStore) Retrieve(ctx context.Context, name string) (string, error) {
	c, ok := m.objects[name]
	if !ok {
		return "", delivery.ErrNotFound
	}
	return c, nil
}

type sentMail struct{ subject, content string }

type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, subject, content string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{subject, content})
	return nil
}

type countingProvider struct{ names []string }

func (c *countingProvider) Count(name string, _ float64, _ []string) error {
	c.names = append(c.names, name)
	return nil
}
func (c *countingProvider) Gauge(name string, _ float64, _ []string) error {
	c.names = append(c.names, name)
	return nil
}
func (c *countingProvider) Histogram(name string, _ float64, _ []string) error {
	c.names = append(c.names, name)
	return nil
}

var today = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func compile(t *testing.T, expr string) *rules.Rule {
	t.Helper()
	rm, err := rules.NewRuleManager()
	require.NoError(t, err)
	rule, err := rm.Compile(expr)
	require.NoError(t, err)
	return rule
}

func TestList(t *testing.T) {
	engine := new(mockEngine)
	provider := &countingProvider{}
	params := feedback.Params{Urgency: "alta"}
	engine.On("Query", mock.Anything, params).Return(&feedback.Page{Count: 1, Items: []feedback.Record{{"nota": "5"}}}, nil)

	svc := New(engine, WithRecorder(metrics.NewRecorder(provider)))
	page, err := svc.List(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, []string{metrics.QueryDuration, metrics.QueryItems}, provider.names)
}

func TestList_Error(t *testing.T) {
	engine := new(mockEngine)
	engine.On("Query", mock.Anything, mock.Anything).Return(nil, feedback.ErrInvalidInput)

	_, err := New(engine).List(context.Background(), feedback.Params{PageSize: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateReport(t *testing.T) {
	store := &memStore{objects: map[string]string{}}
	svc := New(new(mockEngine), WithStore(store), WithClock(func() time.Time { return today }))

	res, err := svc.GenerateReport(context.Background(), []feedback.Record{
		{"nota": "4", "urgency": "alta", "createdAt": "2026-10-10T10:00:00Z"},
	})

	require.NoError(t, err)
	assert.Equal(t, "weekly-report-2026-10-16.txt", res.ReportKey)
	assert.Equal(t, 1, res.Total)
	assert.Contains(t, store.objects[res.ReportKey], "Média geral das notas: 4.00")
}

func TestGenerateReport_Errors(t *testing.T) {
	_, err := New(new(mockEngine)).GenerateReport(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	boom := errors.New("s3 down")
	svc := New(new(mockEngine), WithStore(&memStore{err: boom}))
	_, err = svc.GenerateReport(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestNotify(t *testing.T) {
	store := &memStore{objects: map[string]string{"weekly-report-2026-10-16.txt": "conteúdo"}}

	t.Run("envia", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := New(new(mockEngine), WithStore(store), WithNotifier(notifier, "ses"))

		res, err := svc.Notify(context.Background(), NotifyRequest{ReportKey: "weekly-report-2026-10-16.txt"})

		require.NoError(t, err)
		assert.True(t, res.Sent)
		assert.Equal(t, []sentMail{{Subject, "conteúdo"}}, notifier.sent)
	})

	t.Run("reportKey obrigatório", func(t *testing.T) {
		svc := New(new(mockEngine), WithStore(store), WithNotifier(&fakeNotifier{}, "ses"))
		_, err := svc.Notify(context.Background(), NotifyRequest{ReportKey: " "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("relatório inexistente", func(t *testing.T) {
		svc := New(new(mockEngine), WithStore(store), WithNotifier(&fakeNotifier{}, "ses"))
		_, err := svc.Notify(context.Background(), NotifyRequest{ReportKey: "nope.txt"})
		assert.ErrorIs(t, err, delivery.ErrNotFound)
	})

	t.Run("condição bloqueia", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := New(new(mockEngine), WithStore(store), WithNotifier(notifier, "ses"),
			WithCondition(compile(t, "input.force == true")))

		res, err := svc.Notify(context.Background(), NotifyRequest{
			ReportKey: "weekly-report-2026-10-16.txt",
			Input:     map[string]any{"force": false},
		})

		require.NoError(t, err)
		assert.False(t, res.Sent)
		assert.Empty(t, notifier.sent)
	})

	t.Run("falha no envio", func(t *testing.T) {
		provider := &countingProvider{}
		svc := New(new(mockEngine), WithStore(store),
			WithNotifier(&fakeNotifier{err: errors.New("MessageRejected")}, "ses"),
			WithRecorder(metrics.NewRecorder(provider)))

		_, err := svc.Notify(context.Background(), NotifyRequest{ReportKey: "weekly-report-2026-10-16.txt"})
		assert.ErrorContains(t, err, "MessageRejected")
		assert.Equal(t, []string{metrics.NotificationError}, provider.names)
	})

	t.Run("sem notificador", func(t *testing.T) {
		svc := New(new(mockEngine), WithStore(store))
		_, err := svc.Notify(context.Background(), NotifyRequest{ReportKey: "weekly-report-2026-10-16.txt"})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestRunWeekly(t *testing.T) {
	records := []feedback.Record{
		{"nota": "5", "urgency": "alta", "createdAt": "2026-10-12T10:00:00Z"},
		{"nota": "3", "urgency": "baixa", "createdAt": "2026-10-13T10:00:00Z"},
	}

	t.Run("pipeline completo", func(t *testing.T) {
		engine := new(mockEngine)
		engine.On("All", mock.Anything, feedback.Params{StartDate: "2026-10-09"}).Return(records, nil)
		store := &memStore{objects: map[string]string{}}
		notifier := &fakeNotifier{}

		svc := New(engine, WithStore(store), WithNotifier(notifier, "smtp"),
			WithClock(func() time.Time { return today }),
			WithCondition(compile(t, "stats.total > 0 && stats.alta >= 1")))

		res, err := svc.RunWeekly(context.Background(), feedback.Params{StartDate: "2026-10-09"})

		require.NoError(t, err)
		assert.Equal(t, &WeeklyResult{ReportKey: "weekly-report-2026-10-16.txt", Total: 2, Notified: true}, res)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, store.objects[res.ReportKey], notifier.sent[0].content)
	})

	t.Run("lote vazio não notifica pela condição", func(t *testing.T) {
		engine := new(mockEngine)
		engine.On("All", mock.Anything, mock.Anything).Return([]feedback.Record{}, nil)
		notifier := &fakeNotifier{}

		svc := New(engine, WithStore(&memStore{objects: map[string]string{}}), WithNotifier(notifier, "ses"),
			WithCondition(compile(t, "stats.total > 0")))

		res, err := svc.RunWeekly(context.Background(), feedback.Params{})

		require.NoError(t, err)
		assert.False(t, res.Notified)
		assert.Zero(t, res.Total)
	})

	t.Run("falha na consulta", func(t *testing.T) {
		engine := new(mockEngine)
		engine.On("All", mock.Anything, mock.Anything).Return(nil, feedback.ErrQueryFailed)

		_, err := New(engine).RunWeekly(context.Background(), feedback.Params{})
		assert.ErrorIs(t, err, feedback.ErrQueryFailed)
	})
}
