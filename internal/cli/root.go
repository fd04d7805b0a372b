// Package cli implementa o feedbackctl, a linha de comando do serviço de
// feedbacks.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/internal/app"
	"github.com/spf13/cobra"
)

var (
	envFiles   []string
	formatFlag string

	// newApp é substituível nos testes.
	newApp = app.New
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "feedbackctl",
	Short:         "Consulta feedbacks e gera o relatório semanal",
	Long:          "CLI do serviço de feedbacks: listagem paginada, relatório semanal, notificação, carga de dados e execução do servidor HTTP e do worker SQS.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringSliceVarP(&envFiles, "env-file", "e", []string{".env"}, "Arquivos .env carregados antes do ambiente")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// Execute roda o comando raiz e devolve o código de saída.
func Execute(ctx context.Context) int {
	if err := RootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func openApp(cmd *cobra.Command) (*app.App, error) {
	a, err := newApp(cmd.Context(), envFiles...)
	if err != nil {
		return nil, fmt.Errorf("inicialização: %w", err)
	}
	return a, nil
}

// addRangeFlags registra os filtros de intervalo comuns a list e weekly.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Data inicial (createdAt >=)")
	cmd.Flags().String("end", "", "Data final (createdAt <=)")
	cmd.Flags().StringP("urgency", "u", "", "Filtra por urgência: alta, media ou baixa")
}

func rangeParams(cmd *cobra.Command) (feedback.Params, error) {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	urgency, _ := cmd.Flags().GetString("urgency")

	values := map[string]string{
		feedback.ParamStartDate: start,
		feedback.ParamEndDate:   end,
		feedback.ParamUrgency:   urgency,
	}
	if f := cmd.Flags().Lookup("next-token"); f != nil {
		values[feedback.ParamNextToken] = f.Value.String()
	}
	if f := cmd.Flags().Lookup("page-size"); f != nil && f.Changed {
		values[feedback.ParamPageSize] = f.Value.String()
	}
	return feedback.ParseParams(values)
}

// printResult escreve v como JSON indentado ou, no formato text, usa a
// forma textual devolvida por text.
func printResult(w io.Writer, v any, text func() string) error {
	if strings.EqualFold(formatFlag, "text") && text != nil {
		_, err := fmt.Fprintln(w, text())
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
