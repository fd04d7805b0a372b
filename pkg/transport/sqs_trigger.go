package transport

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SQSClient define a interface necessária para o trigger (permite Mocking)
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// WeeklyRunner executa o pipeline semanal.
type WeeklyRunner interface {
	RunWeekly(ctx context.Context, p feedback.Params) (*service.WeeklyResult, error)
}

// SQSTrigger consome a fila e dispara o pipeline semanal a cada mensagem.
//
// O corpo da mensagem pode trazer startDate, endDate e urgency. Mensagens
// com corpo inválido são descartadas; falhas no pipeline deixam a mensagem
// na fila para nova entrega.
type SQSTrigger struct {
	client     SQSClient
	queueURL   string
	runner     WeeklyRunner
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewSQSTrigger(client SQSClient, queueURL string, runner WeeklyRunner) *SQSTrigger {
	return &SQSTrigger{
		client:     client,
		queueURL:   queueURL,
		runner:     runner,
		retryDelay: 5 * time.Second,
		logger:     log.With().Str("component", "sqs_trigger").Logger(),
	}
}

// Start inicia o consumo (bloqueante) até o contexto ser cancelado.
func (s *SQSTrigger) Start(ctx context.Context) {
	if s.queueURL == "" {
		s.logger.Warn().Msg("URL da fila SQS não configurada. Trigger desativado.")
		return
	}

	s.logger.Info().Str("queue", s.queueURL).Msg("Monitorando fila SQS")

	for {
		if ctx.Err() != nil {
			s.logger.Info().Msg("Parando monitoramento SQS")
			return
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Dur("retry_in", s.retryDelay).Msg("Erro no SQS")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}

		for _, msg := range out.Messages {
			s.handle(ctx, msg)
		}
	}
}

func (s *SQSTrigger) handle(ctx context.Context, msg types.Message) {
	logger := s.logger.With().Str("message_id", aws.ToString(msg.MessageId)).Logger()
	ctx = logger.WithContext(ctx)

	values, err := stringValues([]byte(aws.ToString(msg.Body)))
	var params feedback.Params
	if err == nil {
		params, err = feedback.ParseParams(values)
	}
	if err != nil {
		logger.Error().Err(err).Msg("mensagem inválida descartada")
		s.delete(ctx, msg)
		return
	}

	res, err := s.runner.RunWeekly(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("falha no pipeline semanal")
		return
	}

	logger.Info().
		Str("report_key", res.ReportKey).
		Int("total", res.Total).
		Bool("notified", res.Notified).
		Msg("pipeline semanal concluído")
	s.delete(ctx, msg)
}

func (s *SQSTrigger) delete(ctx context.Context, msg types.Message) {
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("falha ao remover mensagem da fila")
	}
}
