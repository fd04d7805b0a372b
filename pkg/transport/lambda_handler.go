package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/feedback-service/feedback"
	"github.com/rs/zerolog/log"
)

// LambdaHandler adapta eventos da Lambda para o Service.
//
// Eventos do API Gateway (com httpMethod ou requestContext) recebem uma
// resposta HTTP completa; invocações diretas devolvem o resultado ou o erro.
type LambdaHandler struct {
	svc  Service
	opts Options
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(svc Service, opts Options) *LambdaHandler {
	return &LambdaHandler{svc: svc, opts: opts}
}

// Handle processa o evento bruto recebido pela Lambda.
func (h *LambdaHandler) Handle(ctx context.Context, event json.RawMessage) (any, error) {
	var probe struct {
		HTTPMethod     string          `json:"httpMethod"`
		RequestContext json.RawMessage `json:"requestContext"`
	}
	_ = json.Unmarshal(event, &probe)

	if probe.HTTPMethod != "" || len(probe.RequestContext) > 0 {
		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(event, &req); err != nil {
			return nil, fmt.Errorf("evento API Gateway inválido: %w", err)
		}
		return h.HandleAPIGateway(ctx, req)
	}

	logger := log.With().
		Str("correlation_id", uuid.NewString()).
		Str("handler", h.opts.Handler).
		Logger()
	ctx = logger.WithContext(ctx)
	ctx, cancel := withTimeout(ctx, h.opts.Timeout)
	defer cancel()

	start := time.Now()
	var query map[string]string
	if h.opts.Handler == HandlerList {
		values, err := stringValues(event)
		if err != nil {
			return nil, err
		}
		query = values
	}

	result, err := h.invoke(ctx, query, event)
	if err != nil {
		logger.Error().Err(err).Msg("lambda invocation failed")
		return nil, err
	}

	logger.Info().Int64("latency_ms", time.Since(start).Milliseconds()).Msg("lambda invocation completed")
	return result, nil
}

// HandleAPIGateway processa uma requisição do API Gateway.
func (h *LambdaHandler) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	corrID := req.Headers[HeaderCorrelationID]
	if corrID == "" {
		corrID = req.Headers["X-Correlation-Id"]
	}
	if corrID == "" {
		corrID = uuid.NewString()
	}

	logger := log.With().Str("correlation_id", corrID).Str("handler", h.opts.Handler).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)
	ctx, cancel := withTimeout(ctx, h.opts.Timeout)
	defer cancel()

	var response events.APIGatewayProxyResponse
	if h.opts.GraphQL != nil && req.Path == "/graphql" {
		response = h.handleGraphQL(ctx, req)
	} else {
		result, err := h.invoke(ctx, req.QueryStringParameters, []byte(req.Body))
		if err != nil {
			logger.Error().Err(err).Msg("lambda request failed")
			response = apiResponse(statusFor(err), errorBody(err))
		} else {
			response = jsonResponse(http.StatusOK, result)
		}
	}

	logger.Info().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Int("status", response.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")

	response.Headers[HeaderCorrelationID] = corrID
	return response, nil
}

func (h *LambdaHandler) invoke(ctx context.Context, query map[string]string, body []byte) (any, error) {
	switch h.opts.Handler {
	case HandlerList:
		params, err := feedback.ParseParams(query)
		if err != nil {
			return nil, err
		}
		return h.svc.List(ctx, params)
	case HandlerReport:
		return generateReport(ctx, h.svc, body)
	case HandlerNotify:
		return notify(ctx, h.svc, h.opts.Recipient, body)
	case HandlerWeekly:
		return weekly(ctx, h.svc, body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, h.opts.Handler)
	}
}

func (h *LambdaHandler) handleGraphQL(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var p graphQLRequest
	if err := json.Unmarshal([]byte(req.Body), &p); err != nil {
		return apiResponse(http.StatusBadRequest, []byte(`{"error": "Invalid JSON Body"}`))
	}
	return jsonResponse(http.StatusOK, h.opts.GraphQL.Execute(ctx, p.Query, p.Variables))
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return apiResponse(http.StatusInternalServerError, []byte(`{"error": "Failed to serialize response"}`))
	}
	return apiResponse(status, body)
}

func apiResponse(status int, body []byte) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}
