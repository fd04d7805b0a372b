package cli

import (
	"fmt"

	"github.com/raywall/feedback-service/pkg/service"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Envia um relatório gravado por e-mail",
		RunE:  runNotify,
	}
	cmd.Flags().StringP("key", "k", "", "Chave do relatório (required)")
	cmd.MarkFlagRequired("key")
	RootCmd.AddCommand(cmd)

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Executa o pipeline semanal: consulta, relatório e notificação",
		RunE:  runWeekly,
	}
	addRangeFlags(weekly)
	RootCmd.AddCommand(weekly)
}

func runNotify(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("key")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Service.Notify(cmd.Context(), service.NotifyRequest{
		ReportKey: key,
		Input:     map[string]any{"reportKey": key},
	})
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res, func() string {
		if res.Sent {
			return fmt.Sprintf("Relatório %s enviado para %s", res.ReportKey, a.Config.Mail.Recipient)
		}
		return fmt.Sprintf("Relatório %s não enviado: condição não atendida", res.ReportKey)
	})
}

func runWeekly(cmd *cobra.Command, args []string) error {
	params, err := rangeParams(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Service.RunWeekly(cmd.Context(), params)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res, func() string { return reportText(res) })
}
