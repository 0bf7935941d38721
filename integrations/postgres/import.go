package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/maplebudget/mapleparse/parser"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Imported   int
	Duplicates int
	Failed     int
	Errors     []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	UserID  string // Owner of the imported transactions
	Verbose bool   // Enable verbose logging
}

// ImportFile parses a single statement PDF and stores its new transactions.
// Duplicates against already-stored rows are counted and skipped, which makes
// re-importing the same statement a no-op.
func (db *DB) ImportFile(ctx context.Context, filePath string, opts ImportOptions) (imported int, duplicates int, failed int, errors []string) {
	fileName := filepath.Base(filePath)

	buf, err := os.ReadFile(filePath)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: failed to read file: %v", fileName, err)}
	}

	engine := parser.New(db)
	result, err := engine.ParseBankStatement(ctx, buf, opts.UserID, fileName)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
	}

	if err := db.InsertTransactions(ctx, opts.UserID, result.NewTransactions, fileName); err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: %v", fileName, result.Bank, err)}
	}

	if opts.Verbose {
		log.Printf("OK   %s [%s %s] (%d new, %d duplicates)",
			fileName, result.Bank, result.AccountType,
			len(result.NewTransactions), len(result.DuplicateTransactions))
	}

	return len(result.NewTransactions), len(result.DuplicateTransactions), 0, nil
}

// ImportDirectory processes all PDF files in a directory
func (db *DB) ImportDirectory(ctx context.Context, dirPath string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var pdfFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfFiles = append(pdfFiles, filepath.Join(dirPath, e.Name()))
		}
	}

	log.Printf("Scanning: %s", dirPath)
	log.Printf("Found %d PDF files", len(pdfFiles))

	for _, filePath := range pdfFiles {
		imported, duplicates, failed, errors := db.ImportFile(ctx, filePath, opts)

		result.Imported += imported
		result.Duplicates += duplicates
		result.Failed += failed
		result.Errors = append(result.Errors, errors...)

		if opts.Verbose && failed > 0 {
			for _, errMsg := range errors {
				log.Printf("FAIL %s", errMsg)
			}
		}
	}

	return result, nil
}

// Import handles both file and directory imports
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return db.ImportDirectory(ctx, path, opts)
	}

	result := &ImportResult{}
	result.Imported, result.Duplicates, result.Failed, result.Errors = db.ImportFile(ctx, path, opts)
	return result, nil
}
