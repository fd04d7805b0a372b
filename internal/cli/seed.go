package cli

import (
	"fmt"
	"os"

	"github.com/raywall/feedback-service/feedback"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carrega feedbacks de um arquivo YAML ou JSON na tabela",
		RunE:  runSeed,
	}
	cmd.Flags().String("file", "", "Arquivo de seed (required)")
	cmd.MarkFlagRequired("file")
	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	items, err := feedback.ReadSeed(f)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := feedback.NewSeeder(a.Table).Seed(cmd.Context(), items)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), map[string]int{"written": n}, func() string {
		return fmt.Sprintf("%d feedbacks gravados em %s", n, a.Config.Table.Name)
	})
}
