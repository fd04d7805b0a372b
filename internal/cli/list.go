package cli

import (
	"fmt"
	"strings"

	"github.com/raywall/feedback-service/feedback"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista uma página de feedbacks",
		RunE:  runList,
	}

	addRangeFlags(cmd)
	cmd.Flags().String("next-token", "", "Token de continuação devolvido pela página anterior")
	cmd.Flags().IntP("page-size", "n", 0, "Itens por página (padrão: DEFAULT_PAGE_SIZE)")
	cmd.Flags().Bool("all", false, "Percorre todas as páginas")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	params, err := rangeParams(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if all {
		records, err := a.Engine.All(cmd.Context(), params)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), records, func() string { return formatRecords(records) })
	}

	page, err := a.Service.List(cmd.Context(), params)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), page, func() string {
		out := formatRecords(page.Items)
		if page.NextToken != nil {
			out += "\nnextToken: " + page.NextToken.String()
		}
		return out
	})
}

func formatRecords(records []feedback.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d feedbacks", len(records))
	for _, rec := range records {
		fmt.Fprintf(&b, "\n%s | nota %s | %s",
			feedback.Display(rec[feedback.FieldCreatedAt]),
			feedback.Display(rec[feedback.FieldNota]),
			feedback.Display(rec[feedback.FieldUrgency]))
	}
	return b.String()
}
