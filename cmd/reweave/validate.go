package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/palette"
	"github.com/reweave/reweave/internal/token"
	"github.com/reweave/reweave/internal/wcag"
	"github.com/reweave/reweave/pkg/diff"
)

type validateOptions struct {
	LightPath  string
	DarkPath   string
	ConfigPath string
	JSON       bool
	Verbose    bool
}

var validateCmdRunner = runValidate

func newValidateCmd(root *rootFlags) *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <tokens.yaml>",
		Short: "Validate a token document's structure and accessibility",
		Long: `Validate checks a token document for structural completeness, duplicate
semantic values, and exhaustive text/background contrast. With --dark it also
verifies the dark document mirrors the light one. Returns exit code 0 when no
error-severity issues are found, exit code 1 otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LightPath = args[0]
			opts.Verbose = root.verbose

			return validateCmdRunner(opts)
		},
	}

	cmd.Flags().StringVar(&opts.DarkPath, "dark", "", "Dark-mode token document to check for parity")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Analysis configuration file (default preset when omitted)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")

	return cmd
}

func runValidate(opts validateOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}

	light, err := parseDocumentFile(opts.LightPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing tokens: %v\n", err)
		os.Exit(2)
	}

	issues := checkStructure(light)
	issues = append(issues, wcag.CheckSemanticNaming(light)...)

	pairs := wcag.CrossProductPairs(light)
	results, pairIssues := wcag.EvaluatePairs(light, pairs, cfg.Contrast)
	issues = append(issues, pairIssues...)

	var parityDiff string
	if opts.DarkPath != "" {
		dark, err := parseDocumentFile(opts.DarkPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing dark tokens: %v\n", err)
			os.Exit(2)
		}
		if parity := wcag.CheckDarkParity(light, dark); len(parity) > 0 {
			issues = append(issues, parity...)
			parityDiff = diff.Unified(skeleton(light), skeleton(dark), opts.LightPath, opts.DarkPath)
		}

		darkResults, darkIssues := wcag.EvaluatePairs(dark, wcag.CrossProductPairs(dark), cfg.Contrast)
		results = append(results, darkResults...)
		issues = append(issues, darkIssues...)
	}

	if opts.JSON {
		printValidateJSON(opts, results, issues)
	} else {
		printValidateOutput(opts, results, issues)
		if parityDiff != "" {
			fmt.Println("\nStructural drift between modes:")
			fmt.Print(parityDiff)
		}
	}

	if wcag.HasErrors(issues) {
		os.Exit(1)
	}
	return nil
}

func parseDocumentFile(path string) (*token.Document, error) {
	if err := validateInputPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return token.ParseDocument(data)
}

// requiredTokenPaths is the structural contract every complete document
// satisfies.
func requiredTokenPaths() []string {
	paths := []string{"colors.primary", "colors.secondary"}
	for _, role := range palette.AlertRoles {
		paths = append(paths, "colors."+string(role))
	}
	for _, step := range palette.NeutralSteps {
		paths = append(paths, fmt.Sprintf("colors.neutral.%d", step))
	}
	return paths
}

// skeleton serializes the document's structural shape, one "path: type"
// line per token, so mode differences in values do not show up in parity
// diffs.
func skeleton(doc *token.Document) []byte {
	var b strings.Builder
	for _, path := range doc.Paths() {
		tok, _ := doc.Get(path)
		fmt.Fprintf(&b, "%s: %s\n", path, tok.Type)
	}
	return []byte(b.String())
}

func checkStructure(doc *token.Document) []wcag.Issue {
	var issues []wcag.Issue
	for _, path := range requiredTokenPaths() {
		if _, ok := doc.Get(path); !ok {
			issues = append(issues, wcag.Issue{
				Severity: wcag.SeverityError,
				Path:     path,
				Message:  "required token missing",
			})
		}
	}
	return issues
}

func printValidateOutput(opts validateOptions, results []wcag.PairResult, issues []wcag.Issue) {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}

	fmt.Printf("Validated %s", opts.LightPath)
	if opts.DarkPath != "" {
		fmt.Printf(" and %s", opts.DarkPath)
	}
	fmt.Printf("\n  contrast pairs: %d/%d passing\n", passed, len(results))

	if opts.Verbose {
		for _, r := range results {
			mark := "✔"
			if !r.Passed {
				mark = "✖"
			}
			fmt.Printf("  %s %s on %s  %.2f:1 (needs %.1f:1)\n",
				mark, r.Foreground, r.Background, r.Ratio, r.Threshold)
		}
	}

	for _, issue := range issues {
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Path, issue.Message)
	}

	if wcag.HasErrors(issues) {
		fmt.Println("\n✖ Validation failed")
	} else {
		fmt.Println("\n✔ Token system valid")
	}
}

func printValidateJSON(opts validateOptions, results []wcag.PairResult, issues []wcag.Issue) {
	type JSONPair struct {
		Foreground string  `json:"foreground"`
		Background string  `json:"background"`
		Ratio      float64 `json:"ratio"`
		Threshold  float64 `json:"threshold"`
		Passed     bool    `json:"passed"`
	}

	type JSONIssue struct {
		Severity string `json:"severity"`
		Path     string `json:"path,omitempty"`
		Message  string `json:"message"`
	}

	type JSONOutput struct {
		File   string      `json:"file"`
		Dark   string      `json:"dark_file,omitempty"`
		Valid  bool        `json:"valid"`
		Pairs  []JSONPair  `json:"pairs"`
		Issues []JSONIssue `json:"issues"`
	}

	out := JSONOutput{
		File:   opts.LightPath,
		Dark:   opts.DarkPath,
		Valid:  !wcag.HasErrors(issues),
		Pairs:  make([]JSONPair, 0, len(results)),
		Issues: make([]JSONIssue, 0, len(issues)),
	}
	for _, r := range results {
		out.Pairs = append(out.Pairs, JSONPair{
			Foreground: r.Foreground,
			Background: r.Background,
			Ratio:      r.Ratio,
			Threshold:  r.Threshold,
			Passed:     r.Passed,
		})
	}
	for _, issue := range issues {
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
