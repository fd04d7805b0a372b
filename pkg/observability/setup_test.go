package observability

import (
	"testing"

	"github.com/raywall/feedback-service/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsd struct {
	mock.Mock
}

func (m *mockStatsd) Count(name string, value int64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Gauge(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Histogram(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Flush() error { return m.Called().Error(0) }
func (m *mockStatsd) Close() error { return m.Called().Error(0) }

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{})
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("x", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "feedback.",
			},
		}

		provider, err := SetupMetrics(cfg)
		require.NoError(t, err)
		require.IsType(t, &DatadogProvider{}, provider)
		assert.NoError(t, provider.(*DatadogProvider).Close())
	})
}

func TestDatadogProvider(t *testing.T) {
	client := new(mockStatsd)
	tags := []string{"urgency:alta"}

	client.On("Count", "feedback.report.generated", int64(1), tags, 1.0).Return(nil)
	client.On("Gauge", "feedback.report.average", 4.25, tags, 1.0).Return(nil)
	client.On("Histogram", "feedback.query.items", 10.0, tags, 1.0).Return(nil)
	client.On("Flush").Return(nil)
	client.On("Close").Return(nil)

	p := NewDatadogProvider(client)
	require.NoError(t, p.Count("feedback.report.generated", 1, tags))
	require.NoError(t, p.Gauge("feedback.report.average", 4.25, tags))
	require.NoError(t, p.Histogram("feedback.query.items", 10, tags))
	require.NoError(t, p.Close())

	client.AssertExpectations(t)
}
