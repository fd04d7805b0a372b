package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/raywall/feedback-service/feedback"
	"github.com/raywall/feedback-service/pkg/service"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Gera e grava o relatório a partir de um arquivo ou do intervalo consultado",
		RunE:  runReport,
	}
	addRangeFlags(cmd)
	cmd.Flags().StringP("input", "i", "", `Arquivo JSON com {"feedbacks": [...]} ou uma lista ("-" para stdin)`)

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Exibe um relatório gravado",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportGet,
	}
	cmd.AddCommand(get)

	RootCmd.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	var records []feedback.Record
	if input != "" {
		var err error
		if records, err = readRecordsFile(cmd, input); err != nil {
			return err
		}
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if input == "" {
		params, err := rangeParams(cmd)
		if err != nil {
			return err
		}
		if records, err = a.Engine.All(cmd.Context(), params); err != nil {
			return err
		}
	}

	res, err := a.Service.GenerateReport(cmd.Context(), records)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), res)
}

func runReportGet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	content, err := a.Service.Retrieve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), content)
	return err
}

func printReport(w io.Writer, res *service.ReportResult) error {
	return printResult(w, res, func() string { return res.Content })
}

func readRecordsFile(cmd *cobra.Command, path string) ([]feedback.Record, error) {
	if path == "-" {
		return readRecords(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRecords(f)
}

// readRecords aceita {"feedbacks": [...]} ou uma lista de registros.
func readRecords(r io.Reader) ([]feedback.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '[' {
		var records []feedback.Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %v", feedback.ErrInvalidInput, err)
		}
		return records, nil
	}

	var wrapped struct {
		Feedbacks []feedback.Record `json:"feedbacks"`
	}
	if err := dec.Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", feedback.ErrInvalidInput, err)
	}
	return wrapped.Feedbacks, nil
}

// reportText é usado pelo weekly no formato text.
func reportText(res *service.WeeklyResult) string {
	return fmt.Sprintf("%s (%d feedbacks, notificado: %t)", res.ReportKey, res.Total, res.Notified)
}
