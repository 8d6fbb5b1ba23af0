package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aqlanhadi/depsum/extractor"
	"github.com/aqlanhadi/depsum/extractor/common"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scanFormat string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Summarizes deposit statement(s)",
	Long: `Scans a statement PDF, or every PDF directly inside a folder,
and prints the DEPOSIT and WITHDRAW totals of each file.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

// scanRecord is one output row of the scan command.
type scanRecord struct {
	Filename      string           `json:"filename" csv:"filename"`
	Pages         int              `json:"pages,omitempty" csv:"pages"`
	DepositCount  int              `json:"deposit_count" csv:"deposit_count"`
	TotalDeposit  string           `json:"total_deposit" csv:"total_deposit"`
	TotalWithdraw string           `json:"total_withdraw" csv:"total_withdraw"`
	Overall       string           `json:"overall" csv:"overall"`
	Error         string           `json:"error,omitempty" csv:"error"`
	Deposits      []common.Deposit `json:"deposits,omitempty" csv:"-"`
}

func newScanRecord(r extractor.FileResult) scanRecord {
	rec := scanRecord{
		Filename:      r.Filename,
		Pages:         r.Summary.Pages,
		DepositCount:  len(r.Summary.Deposits),
		TotalDeposit:  r.Summary.TotalDeposit.StringFixed(4),
		TotalWithdraw: r.Summary.TotalWithdraw.StringFixed(4),
		Overall:       r.Overall(),
		Deposits:      r.Summary.Deposits,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

func runScan(cmd *cobra.Command, args []string) error {
	target := viper.GetString("target")

	processor, err := newProcessor()
	if err != nil {
		return err
	}

	results, err := processor.ProcessPath(target)
	if err != nil {
		return err
	}

	return writeResults(cmd.OutOrStdout(), results, scanFormat)
}

// writeResults prints results as text lines, a JSON array or CSV.
func writeResults(w io.Writer, results []extractor.FileResult, format string) error {
	records := make([]scanRecord, 0, len(results))
	for _, r := range results {
		records = append(records, newScanRecord(r))
	}

	switch strings.ToLower(format) {
	case "", "text":
		for _, rec := range records {
			if _, err := fmt.Fprintf(w, "%s: %s\n", rec.Filename, rec.Overall); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "csv":
		if err := gocsv.Marshal(records, w); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or csv)", format)
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("file", "f", ".", "File or folder to scan")
	scanCmd.Flags().StringVar(&scanFormat, "format", "text", "Output format: text, json or csv")
	viper.BindPFlag("target", scanCmd.Flags().Lookup("file"))
}
