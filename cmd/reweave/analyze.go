package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/extract"
	"github.com/reweave/reweave/internal/logger"
	"github.com/reweave/reweave/internal/pipeline"
	"github.com/reweave/reweave/internal/report"
	"github.com/reweave/reweave/internal/sample"
	"github.com/reweave/reweave/internal/score"
	"github.com/reweave/reweave/internal/token"
)

type analyzeOptions struct {
	InputPath  string
	ConfigPath string
	OutPath    string
	Dark       bool
	JSON       bool
	Verbose    bool
}

var analyzeCmdRunner = runAnalyze

func newAnalyzeCmd(root *rootFlags) *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <bundle.yaml|page.html>",
		Short: "Build a normalized token system from sampled site styles",
		Long: `Analyze consumes raw style observations, either a YAML sample bundle or a
static HTML page, and produces a normalized design token document together
with an accessibility report and a quality score. Returns exit code 0 when
the token system is clean, exit code 1 when accessibility errors remain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputPath = args[0]
			opts.Verbose = root.verbose

			return analyzeCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Analysis configuration file (default preset when omitted)")
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "tokens.yaml", "Output path for the token document")
	cmd.Flags().BoolVar(&opts.Dark, "dark", false, "Also write the derived dark-mode document")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")

	return cmd
}

func runAnalyze(opts analyzeOptions) error {
	if err := validateInputPath(opts.InputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: !opts.JSON})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(3)
	}

	bundle, err := loadInput(opts.InputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sampling input: %v\n", err)
		os.Exit(2)
	}

	log.WithFields(map[string]any{
		"input":   opts.InputPath,
		"colors":  len(bundle.Colors),
		"fonts":   len(bundle.Fonts),
		"spacing": len(bundle.Spacing),
	}).Info("Starting analysis")

	result, err := pipeline.Analyze(context.Background(), bundle, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis error: %v\n", err)
		os.Exit(3)
	}

	if err := writeDocument(opts.OutPath, result.Light); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing tokens: %v\n", err)
		os.Exit(3)
	}
	if opts.Dark {
		if err := writeDocument(darkOutputPath(opts.OutPath), result.Dark); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing dark tokens: %v\n", err)
			os.Exit(3)
		}
	}

	if opts.JSON {
		printAnalyzeJSON(result, opts)
	} else {
		report.Render(os.Stdout, result, opts.Verbose)
	}

	if code := result.Summary.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// loadInput samples the bundle from either form of input.
func loadInput(path string) (*sample.Bundle, error) {
	if !isHTMLInput(path) {
		return sample.LoadBundle(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return extract.FromHTML(f, path)
}

func writeDocument(path string, doc *token.Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printAnalyzeJSON(result *pipeline.Result, opts analyzeOptions) {
	type JSONIssue struct {
		Severity string `json:"severity"`
		Path     string `json:"path,omitempty"`
		Message  string `json:"message"`
	}

	type JSONSummary struct {
		Tokens      int `json:"tokens"`
		TotalPairs  int `json:"contrast_pairs"`
		PassedPairs int `json:"contrast_passed"`
		Errors      int `json:"errors"`
		Warnings    int `json:"warnings"`
	}

	type JSONOutput struct {
		Input           string                      `json:"input"`
		Output          string                      `json:"output"`
		DarkOutput      string                      `json:"dark_output,omitempty"`
		Summary         JSONSummary                 `json:"summary"`
		Overall         float64                     `json:"overall_score"`
		Breakdown       map[score.Category]float64  `json:"breakdown"`
		Recommendations []string                    `json:"recommendations"`
		Issues          []JSONIssue                 `json:"issues"`
	}

	out := JSONOutput{
		Input:  opts.InputPath,
		Output: opts.OutPath,
		Summary: JSONSummary{
			Tokens:      result.Summary.TokenCount,
			TotalPairs:  result.Summary.TotalPairs,
			PassedPairs: result.Summary.PassedPairs,
			Errors:      result.Summary.Errors,
			Warnings:    result.Summary.Warnings,
		},
		Overall:         result.Score.Overall,
		Breakdown:       result.Score.Breakdown,
		Recommendations: result.Score.Recommendations,
		Issues:          make([]JSONIssue, 0, len(result.Issues)),
	}
	if opts.Dark {
		out.DarkOutput = darkOutputPath(opts.OutPath)
	}
	for _, issue := range result.Issues {
		out.Issues = append(out.Issues, JSONIssue{
			Severity: string(issue.Severity),
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(out)
}
