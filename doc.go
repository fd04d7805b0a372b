// Package feedbackservice reúne o serviço de feedbacks: consulta paginada por
// intervalo de datas no DynamoDB, geração do relatório semanal e envio por
// e-mail.
//
// Visão Geral:
// O módulo é organizado em camadas pequenas, cada uma testável isoladamente
// por meio de interfaces:
// 1. Persistência (dyndb): Store genérico sobre DynamoDB, QueryBuilder fluente,
// token de paginação opaco e decodificação de AttributeValue.
// 2. Domínio (feedback, report): Engine de consulta da partição FEEDBACK e
// agregação/renderização do relatório.
// 3. Entrega (delivery): gravação no S3 com cache Redis e arquivo Postgres,
// notificação via SES ou SMTP.
// 4. Orquestração (pkg/service): listagem, relatório, notificação e pipeline
// semanal, com condição CEL e métricas.
// 5. Transporte (pkg/transport, pkg/graphql): Lambda (API Gateway ou invocação
// direta), API HTTP com gorilla/mux, GraphQL e worker SQS.
//
// Configuração:
// Todas as opções vêm de variáveis de ambiente (envloader), com suporte a
// arquivos .env e placeholders ${ssm.x}, ${secret.x} e ${env.x}.
//
// Binários:
//
//   - cmd/feedback-lambda: handler único da Lambda, selecionado por HANDLER
//     (list, report, notify ou weekly).
//   - cmd/feedbackctl: CLI com os comandos list, report, notify, weekly, seed,
//     serve e worker.
//
// Exemplo de Início Rápido:
//
//	export TABLE_NAME=feedbacks REPORTS_BUCKET=relatorios NOTIFIER=none
//	feedbackctl seed --file feedbacks.yaml
//	feedbackctl list --urgency alta --page-size 10
//	feedbackctl weekly --start 2026-10-09
package feedbackservice
