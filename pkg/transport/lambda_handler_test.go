package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/feedback-service/delivery"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/graphql"
	"github.com/raywall/feedback-service/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func apiEvent(t *testing.T, req events.APIGatewayProxyRequest) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return b
}

func TestLambdaHandler_APIGatewayList(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, feedback.Params{Urgency: "alta", PageSize: 2}).Return(&feedback.Page{
		Count:     1,
		Items:     []feedback.Record{{"nota": "5", "urgency": "alta"}},
		StartDate: feedback.DefaultStartDate,
		EndDate:   feedback.DefaultEndDate,
		Urgency:   "alta",
	}, nil)

	handler := NewLambdaHandler(svc, Options{Handler: HandlerList})
	out, err := handler.Handle(context.Background(), apiEvent(t, events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/feedbacks",
		Headers:               map[string]string{HeaderCorrelationID: "corr-1"},
		QueryStringParameters: map[string]string{"urgency": "alta", "pageSize": "2"},
	}))

	require.NoError(t, err)
	resp := out.(events.APIGatewayProxyResponse)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "corr-1", resp.Headers[HeaderCorrelationID])

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, float64(1), body["count"])
	assert.Nil(t, body["nextToken"])
	assert.Equal(t, "alta", body["urgency"])
}

func TestLambdaHandler_APIGatewayErrors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		err    error
		status int
	}{
		{"pageSize inválido", map[string]string{"pageSize": "abc"}, nil, http.StatusBadRequest},
		{"token inválido", map[string]string{"nextToken": "%%%"}, nil, http.StatusBadRequest},
		{"falha na consulta", nil, fmt.Errorf("%w: boom", feedback.ErrQueryFailed), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			handler := NewLambdaHandler(svc, Options{Handler: HandlerList})
			resp, err := handler.HandleAPIGateway(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod:            http.MethodGet,
				QueryStringParameters: tt.params,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, resp.Body, `"error"`)
			assert.NotEmpty(t, resp.Headers[HeaderCorrelationID])
		})
	}
}

func TestLambdaHandler_APIGatewayNotifyNotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("Notify", mock.Anything, mock.Anything).Return(nil, delivery.ErrNotFound)

	handler := NewLambdaHandler(svc, Options{Handler: HandlerNotify})
	out, err := handler.Handle(context.Background(),
		json.RawMessage(`{"requestContext": {"stage": "prod"}, "body": "{\"reportKey\": \"nope.txt\"}"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, out.(events.APIGatewayProxyResponse).StatusCode)
}

func TestLambdaHandler_DirectReport(t *testing.T) {
	svc := new(mockService)
	svc.On("GenerateReport", mock.Anything, mock.MatchedBy(func(records []feedback.Record) bool {
		return len(records) == 2 && feedback.Display(records[0]["nota"]) == "4"
	})).Return(&service.ReportResult{ReportKey: "weekly-report-2026-10-16.txt", Total: 2}, nil)

	handler := NewLambdaHandler(svc, Options{Handler: HandlerReport})
	out, err := handler.Handle(context.Background(),
		json.RawMessage(`{"feedbacks": [{"nota": 4, "urgency": "alta"}, {"nota": "x"}]}`))

	require.NoError(t, err)
	assert.Equal(t, &ReportResponse{
		Message:   "Relatório gerado com sucesso: weekly-report-2026-10-16.txt",
		ReportKey: "weekly-report-2026-10-16.txt",
		Total:     2,
	}, out)
}

func TestLambdaHandler_DirectNotify(t *testing.T) {
	svc := new(mockService)
	svc.On("Notify", mock.Anything, service.NotifyRequest{
		ReportKey: "weekly-report-2026-10-16.txt",
		Input:     map[string]any{"reportKey": "weekly-report-2026-10-16.txt"},
	}).Return(&service.NotifyResult{ReportKey: "weekly-report-2026-10-16.txt", Sent: true}, nil)

	handler := NewLambdaHandler(svc, Options{Handler: HandlerNotify, Recipient: "time@exemplo.com"})
	out, err := handler.Handle(context.Background(), json.RawMessage(`{"reportKey": "weekly-report-2026-10-16.txt"}`))

	require.NoError(t, err)
	assert.Equal(t, "Relatório enviado com sucesso para time@exemplo.com", out.(*NotifyResponse).Message)
}

func TestLambdaHandler_DirectErrors(t *testing.T) {
	t.Run("reportKey ausente", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Notify", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: reportKey is required", service.ErrInvalidInput))

		_, err := NewLambdaHandler(svc, Options{Handler: HandlerNotify}).Handle(context.Background(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("handler desconhecido", func(t *testing.T) {
		_, err := NewLambdaHandler(new(mockService), Options{Handler: "export"}).Handle(context.Background(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrUnknownHandler)
	})

	t.Run("falha no pipeline", func(t *testing.T) {
		svc := new(mockService)
		boom := errors.New("boom")
		svc.On("RunWeekly", mock.Anything, feedback.Params{StartDate: "2026-10-09"}).Return(nil, boom)

		_, err := NewLambdaHandler(svc, Options{Handler: HandlerWeekly}).Handle(context.Background(),
			json.RawMessage(`{"startDate": "2026-10-09", "detail-type": "Scheduled Event"}`))
		assert.ErrorIs(t, err, boom)
	})
}

func TestLambdaHandler_GraphQL(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, feedback.Params{}).Return(&feedback.Page{Count: 0, Items: []feedback.Record{}}, nil)

	gql, err := graphql.NewGraphQLEngine(svc)
	require.NoError(t, err)

	handler := NewLambdaHandler(svc, Options{Handler: HandlerList, GraphQL: gql})
	resp, err := handler.HandleAPIGateway(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/graphql",
		Body:       `{"query": "{ feedbacks { count } }"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data": {"feedbacks": {"count": 0}}}`, resp.Body)
}
