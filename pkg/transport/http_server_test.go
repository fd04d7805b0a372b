package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raywall/feedback-service/delivery"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc Service, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(svc, Options{Timeout: time.Second, Recipient: "time@exemplo.com"}).ServeHTTP(rec, req)
	return rec
}

func TestRouter_ListFeedbacks(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, feedback.Params{StartDate: "2026-10-01", Urgency: "baixa"}).
		Return(&feedback.Page{Count: 0, Items: []feedback.Record{}, StartDate: "2026-10-01", Urgency: "baixa"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/feedbacks?startDate=2026-10-01&urgency=baixa", nil)
	req.Header.Set(HeaderCorrelationID, "corr-42")
	rec := serve(t, svc, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "corr-42", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(HeaderLatency))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["items"])
}

func TestRouter_ListInvalidPageSize(t *testing.T) {
	rec := serve(t, new(mockService), httptest.NewRequest(http.MethodGet, "/feedbacks?pageSize=-1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pageSize")
}

func TestRouter_Reports(t *testing.T) {
	svc := new(mockService)
	svc.On("GenerateReport", mock.Anything, mock.Anything).
		Return(&service.ReportResult{ReportKey: "weekly-report-2026-10-16.txt", Total: 3}, nil)
	svc.On("Retrieve", mock.Anything, "weekly-report-2026-10-16.txt").Return("=== RELATÓRIO ===", nil)
	svc.On("Retrieve", mock.Anything, "nope.txt").Return("", delivery.ErrNotFound)

	t.Run("gera", func(t *testing.T) {
		rec := serve(t, svc, httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(`{"feedbacks": []}`)))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message": "Relatório gerado com sucesso: weekly-report-2026-10-16.txt", "reportKey": "weekly-report-2026-10-16.txt", "total": 3}`, rec.Body.String())
	})

	t.Run("corpo inválido", func(t *testing.T) {
		rec := serve(t, svc, httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(`{`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("recupera", func(t *testing.T) {
		rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/reports/weekly-report-2026-10-16.txt", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "=== RELATÓRIO ===", rec.Body.String())
	})

	t.Run("inexistente", func(t *testing.T) {
		rec := serve(t, svc, httptest.NewRequest(http.MethodGet, "/reports/nope.txt", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_NotifyAndWeekly(t *testing.T) {
	svc := new(mockService)
	svc.On("Notify", mock.Anything, mock.MatchedBy(func(req service.NotifyRequest) bool {
		return req.ReportKey == "weekly-report-2026-10-16.txt"
	})).Return(&service.NotifyResult{ReportKey: "weekly-report-2026-10-16.txt", Sent: false}, nil)
	svc.On("RunWeekly", mock.Anything, feedback.Params{}).
		Return(&service.WeeklyResult{ReportKey: "weekly-report-2026-10-16.txt", Total: 7, Notified: true}, nil)

	rec := serve(t, svc, httptest.NewRequest(http.MethodPost, "/reports/notify",
		strings.NewReader(`{"reportKey": "weekly-report-2026-10-16.txt"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sent":false`)

	rec = serve(t, svc, httptest.NewRequest(http.MethodPost, "/reports/weekly", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reportKey": "weekly-report-2026-10-16.txt", "total": 7, "notified": true}`, rec.Body.String())
}

func TestRouter_Health(t *testing.T) {
	rec := serve(t, new(mockService), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartHTTPServer_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- StartHTTPServer(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("servidor não encerrou")
	}
}
