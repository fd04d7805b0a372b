package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus ou Logging sem alterar a lógica de negócio.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelo serviço.
const (
	QueryDuration     = "feedback.query.duration_ms"
	QueryItems        = "feedback.query.items"
	QueryErrors       = "feedback.query.errors"
	ReportGenerated   = "feedback.report.generated"
	ReportTotal       = "feedback.report.total"
	ReportAverage     = "feedback.report.average"
	ReportInvalid     = "feedback.report.invalid_ratings"
	NotificationSent  = "feedback.notification.sent"
	NotificationError = "feedback.notification.errors"
)
