package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maplebudget/mapleparse/parser"
	"github.com/maplebudget/mapleparse/parser/common"
)

var (
	parseUser    string
	parseCSVPath string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse statement(s)",
	Long: `Parses a given statement PDF or a directory of PDFs and prints the
structured result as JSON. Use --csv to write a flat transaction CSV instead.`,
	Run: runParse,
}

// csvRow flattens a transaction for CSV export
type csvRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Merchant    string `csv:"merchant"`
	Amount      string `csv:"amount"`
	Cashflow    string `csv:"cashflow"`
	Category    string `csv:"category"`
	Account     string `csv:"account"`
	Label       string `csv:"label"`
}

func runParse(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")

	files, err := collectPDFs(target)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: %v", err)
	}

	engine := parser.New(nil)
	var results []*common.ParseResult

	for _, path := range files {
		buf, err := os.ReadFile(path)
		if err != nil {
			log.Printf("FAIL %s: %v", filepath.Base(path), err)
			continue
		}

		result, err := engine.ParseBankStatement(context.Background(), buf, parseUser, filepath.Base(path))
		if err != nil {
			log.Printf("FAIL %s: %v", filepath.Base(path), err)
			continue
		}
		results = append(results, result)
	}

	if parseCSVPath != "" {
		if err := writeCSV(results, parseCSVPath); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("error: csv export failed: %v", err)
		}
		return
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: could not encode results: %v", err)
	}
	fmt.Println(string(out))
}

// collectPDFs resolves a file or directory target to a list of PDF paths
func collectPDFs(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat target: %w", err)
	}

	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			files = append(files, filepath.Join(target, e.Name()))
		}
	}
	return files, nil
}

func writeCSV(results []*common.ParseResult, path string) error {
	var rows []csvRow
	for _, result := range results {
		for _, tx := range result.Transactions {
			rows = append(rows, csvRow{
				Date:        tx.DateString(),
				Description: tx.Description,
				Merchant:    tx.Merchant,
				Amount:      tx.Amount.StringFixed(2),
				Cashflow:    string(tx.Cashflow),
				Category:    tx.Category,
				Account:     tx.Account,
				Label:       tx.Label,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("folder", "f", ".", "PDF file or folder to parse")
	parseCmd.Flags().StringVarP(&parseUser, "user", "u", "", "User id to attribute transactions to")
	parseCmd.Flags().StringVar(&parseCSVPath, "csv", "", "Write transactions as CSV to the given path instead of JSON")
	viper.BindPFlag("target", parseCmd.Flags().Lookup("folder"))
}
