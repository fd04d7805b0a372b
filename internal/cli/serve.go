package cli

import (
	"fmt"

	"github.com/raywall/feedback-service/pkg/transport"
	"github.com/spf13/cobra"
)

var (
	// Substituíveis nos testes.
	serverStarter = transport.StartHTTPServer
	workerStarter = func(t *transport.SQSTrigger, cmd *cobra.Command) { t.Start(cmd.Context()) }
)

func init() {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Sobe a API HTTP (REST e GraphQL)",
		RunE:  runServe,
	}
	serve.Flags().IntP("port", "p", 0, "Porta HTTP (padrão: HTTP_PORT)")
	RootCmd.AddCommand(serve)

	worker := &cobra.Command{
		Use:   "worker",
		Short: "Consome REPORT_QUEUE_URL e executa o pipeline semanal a cada mensagem",
		RunE:  runWorker,
	}
	worker.Flags().String("queue", "", "URL da fila (padrão: REPORT_QUEUE_URL)")
	RootCmd.AddCommand(worker)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = a.Config.HTTP.Port
	}

	router := transport.NewRouter(a.Service, a.TransportOptions())
	return serverStarter(cmd.Context(), fmt.Sprintf(":%d", port), router)
}

func runWorker(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	queue, _ := cmd.Flags().GetString("queue")
	if queue == "" {
		queue = a.Config.Queue.URL
	}
	if queue == "" {
		return fmt.Errorf("fila não configurada: informe --queue ou REPORT_QUEUE_URL")
	}

	workerStarter(transport.NewSQSTrigger(a.Clients.SQS, queue, a.Service), cmd)
	return nil
}
