package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"legal-backend/internal/analysis"
	"legal-backend/internal/bootstrap"
	"legal-backend/internal/extract"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one document and print the stored record as JSON",
	Long: `Runs the analysis pipeline once against a local file, using the configured
model provider, object store and database.

Examples:
  analyze --file contract.pdf --user user-1`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("file", "", "path to a PDF, DOCX or TXT file")
	f.String("user", "cli", "user id that owns the stored document")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	userID, _ := cmd.Flags().GetString("user")

	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	kind, ok := extract.KindFromFile(filepath.Base(path), http.DetectContentType(data), data)
	if !ok {
		return eris.Errorf("%s: unsupported file type; use a PDF, DOCX or TXT file", path)
	}

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{SkipRouter: true})
	if err != nil {
		return err
	}
	defer app.Close()

	rec, err := app.AnalysisService.AnalyzeDocument(ctx, analysis.AnalyzeInput{
		FileName: filepath.Base(path),
		Data:     data,
		Kind:     kind,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
