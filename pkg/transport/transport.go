package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/raywall/feedback-service/delivery"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/graphql"
	"github.com/raywall/feedback-service/pkg/service"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
	ContextKeyCorrID    = "correlation_id"
)

// Handlers disponíveis, selecionados por HANDLER.
const (
	HandlerList   = "list"
	HandlerReport = "report"
	HandlerNotify = "notify"
	HandlerWeekly = "weekly"
)

// ErrUnknownHandler indica um HANDLER sem implementação.
var ErrUnknownHandler = errors.New("transport: unknown handler")

// Service é o conjunto de operações expostas pelos transportes.
type Service interface {
	List(ctx context.Context, p feedback.Params) (*feedback.Page, error)
	GenerateReport(ctx context.Context, records []feedback.Record) (*service.ReportResult, error)
	Retrieve(ctx context.Context, key string) (string, error)
	Notify(ctx context.Context, req service.NotifyRequest) (*service.NotifyResult, error)
	RunWeekly(ctx context.Context, p feedback.Params) (*service.WeeklyResult, error)
}

// Options configura os transportes.
type Options struct {
	// Handler é a operação atendida pela Lambda.
	Handler string
	// Timeout limita cada requisição. Zero desativa.
	Timeout time.Duration
	// Recipient aparece na mensagem de confirmação da notificação.
	Recipient string
	// GraphQL habilita a rota /graphql quando não for nil.
	GraphQL *graphql.GraphQLEngine
}

// ReportResponse é a resposta da geração de relatório.
type ReportResponse struct {
	Message   string `json:"message"`
	ReportKey string `json:"reportKey"`
	Total     int    `json:"total"`
}

// NotifyResponse é a resposta da notificação.
type NotifyResponse struct {
	Message   string `json:"message"`
	ReportKey string `json:"reportKey"`
	Sent      bool   `json:"sent"`
}

type reportRequest struct {
	Feedbacks []feedback.Record `json:"feedbacks"`
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// generateReport decodifica {"feedbacks": [...]} e gera o relatório.
func generateReport(ctx context.Context, svc Service, body []byte) (*ReportResponse, error) {
	var req reportRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := decodeJSON(body, &req); err != nil {
			return nil, err
		}
	}

	res, err := svc.GenerateReport(ctx, req.Feedbacks)
	if err != nil {
		return nil, err
	}
	return &ReportResponse{
		Message:   "Relatório gerado com sucesso: " + res.ReportKey,
		ReportKey: res.ReportKey,
		Total:     res.Total,
	}, nil
}

// notify decodifica {"reportKey": "..."}; o corpo inteiro fica disponível
// para a condição de notificação como input.
func notify(ctx context.Context, svc Service, recipient string, body []byte) (*NotifyResponse, error) {
	input := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := decodeJSON(body, &input); err != nil {
			return nil, err
		}
	}
	key, _ := input["reportKey"].(string)

	res, err := svc.Notify(ctx, service.NotifyRequest{ReportKey: key, Input: input})
	if err != nil {
		return nil, err
	}

	msg := "Notificação não enviada: condição não atendida"
	if res.Sent {
		msg = "Relatório enviado com sucesso para " + recipient
	}
	return &NotifyResponse{Message: msg, ReportKey: res.ReportKey, Sent: res.Sent}, nil
}

// weekly aceita um corpo opcional com os mesmos campos da listagem.
func weekly(ctx context.Context, svc Service, body []byte) (*service.WeeklyResult, error) {
	values, err := stringValues(body)
	if err != nil {
		return nil, err
	}
	params, err := feedback.ParseParams(values)
	if err != nil {
		return nil, err
	}
	return svc.RunWeekly(ctx, params)
}

// stringValues converte um objeto JSON plano em parâmetros textuais.
func stringValues(body []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var raw map[string]any
	if err := decodeJSON(body, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v != nil {
			out[k] = feedback.Display(v)
		}
	}
	return out, nil
}

func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", service.ErrInvalidInput, err)
	}
	return nil
}

// statusFor mapeia erros do serviço para códigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, delivery.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) []byte {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return b
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
