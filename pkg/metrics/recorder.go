package metrics

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Recorder traduz eventos do serviço em chamadas ao Provider. Falhas no
// envio são apenas registradas em log.
type Recorder struct {
	provider Provider
	tags     []string
}

// NewRecorder cria um Recorder. Um provider nil descarta as métricas.
func NewRecorder(provider Provider, tags ...string) *Recorder {
	return &Recorder{provider: provider, tags: tags}
}

func (r *Recorder) QueryCompleted(urgency string, items int, elapsed time.Duration, err error) {
	if !r.enabled() {
		return
	}
	tags := r.with("urgency:" + orAll(urgency))
	if err != nil {
		r.emit(r.count(QueryErrors, 1, tags))
		return
	}
	r.emit(r.histogram(QueryDuration, float64(elapsed.Milliseconds()), tags))
	r.emit(r.histogram(QueryItems, float64(items), tags))
}

func (r *Recorder) ReportGenerated(total, invalid int, average *float64) {
	if !r.enabled() {
		return
	}
	r.emit(r.count(ReportGenerated, 1, r.tags))
	r.emit(r.gauge(ReportTotal, float64(total), r.tags))
	r.emit(r.gauge(ReportInvalid, float64(invalid), r.tags))
	if average != nil {
		r.emit(r.gauge(ReportAverage, *average, r.tags))
	}
}

func (r *Recorder) NotificationSent(channel string, err error) {
	if !r.enabled() {
		return
	}
	tags := r.with("channel:" + channel)
	if err != nil {
		r.emit(r.count(NotificationError, 1, tags))
		return
	}
	r.emit(r.count(NotificationSent, 1, tags))
}

func (r *Recorder) with(extra ...string) []string {
	out := make([]string, 0, len(r.tags)+len(extra))
	out = append(out, r.tags...)
	return append(out, extra...)
}

func (r *Recorder) count(name string, v float64, tags []string) error {
	return r.provider.Count(name, v, tags)
}

func (r *Recorder) gauge(name string, v float64, tags []string) error {
	return r.provider.Gauge(name, v, tags)
}

func (r *Recorder) histogram(name string, v float64, tags []string) error {
	return r.provider.Histogram(name, v, tags)
}

func (r *Recorder) enabled() bool {
	return r != nil && r.provider != nil
}

func (r *Recorder) emit(err error) {
	if err != nil {
		log.Warn().Err(err).Msg("falha ao enviar métrica")
	}
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
