package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"veritas-hq/praetor/pkg/sdl"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate statute files",
	Long: `Validate SDL statute files for syntax errors and deprecated syntax.

The lint command parses statute files and reports:
  - Syntax errors with source context and typo suggestions
  - Deprecated syntax warnings (EXCEPT, AMENDS, REPLACES)
  - Duplicate clause warnings

Examples:
  # Lint a single file
  praetor lint --file statutes/curfew.sdl

  # Lint a directory
  praetor lint --dir statutes/

  # Strict mode (warnings as errors)
  praetor lint --dir statutes/ --strict

  # JSON output for CI
  praetor lint --dir statutes/ --format json`,
	RunE: lintStatutes,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "statute file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of statute files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the lint outcome for a single statute file.
type LintResult struct {
	File     string        `json:"file"`
	Valid    bool          `json:"valid"`
	Statutes int           `json:"statutes"`
	Errors   []LintMessage `json:"errors,omitempty"`
	Warnings []LintMessage `json:"warnings,omitempty"`
}

// LintMessage represents a single error or warning.
type LintMessage struct {
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Message  string `json:"message"`
	Rendered string `json:"-"`
}

func lintStatutes(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.sdl", "*.statute"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list statute files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no statute files found")
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file))
	}

	if lintFlags.format == "json" {
		return outputLintJSON(results)
	}
	return outputLintText(results)
}

func lintFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, LintMessage{Message: err.Error()})
		return result
	}
	source := string(data)

	doc, warnings, err := sdl.ParseDocument(source)
	if err != nil {
		result.Valid = false
		msg := LintMessage{Message: err.Error()}
		var parseErr *sdlerrors.Error
		if stderrors.As(err, &parseErr) {
			msg.Line = parseErr.Location.Line
			msg.Column = parseErr.Location.Column
			msg.Kind = string(parseErr.Kind)
			msg.Rendered = sdlerrors.Render(parseErr, source)
		}
		result.Errors = append(result.Errors, msg)
		return result
	}

	result.Statutes = len(doc.Statutes)
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, LintMessage{
			Line:    w.Location.Line,
			Column:  w.Location.Column,
			Kind:    string(w.Kind),
			Message: w.Message,
		})
	}
	return result
}

func outputLintJSON(results []LintResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return err
	}
	if lintFailed(results) {
		os.Exit(1)
	}
	return nil
}

func outputLintText(results []LintResult) error {
	errorCount := 0
	warningCount := 0

	for _, r := range results {
		if r.Valid && len(r.Warnings) == 0 {
			fmt.Printf("✓ %s (%d statutes)\n", r.File, r.Statutes)
			continue
		}

		for _, e := range r.Errors {
			errorCount++
			fmt.Printf("✗ %s\n", r.File)
			if e.Rendered != "" {
				fmt.Println(e.Rendered)
			} else {
				fmt.Printf("  %s\n", e.Message)
			}
		}
		for _, w := range r.Warnings {
			warningCount++
			fmt.Printf("! %s:%d:%d: %s\n", r.File, w.Line, w.Column, w.Message)
		}
	}

	fmt.Printf("\n%d files, %d errors, %d warnings\n", len(results), errorCount, warningCount)

	if lintFailed(results) {
		os.Exit(1)
	}
	return nil
}

func lintFailed(results []LintResult) bool {
	for _, r := range results {
		if !r.Valid {
			return true
		}
		if lintFlags.strict && len(r.Warnings) > 0 {
			return true
		}
	}
	return false
}
