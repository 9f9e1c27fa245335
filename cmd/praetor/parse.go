package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veritas-hq/praetor/pkg/sdl"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
)

var parseFlags struct {
	file   string
	format string
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a statute file and print its AST",
	Long: `Parse a statute file and print the resulting document AST.

Examples:
  # Print the AST as JSON
  praetor parse --file statutes/curfew.sdl

  # Print the AST as YAML
  praetor parse --file statutes/curfew.sdl --format yaml`,
	RunE: parseStatutes,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.file, "file", "f", "", "statute file to parse")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "json", "output format: json, yaml")
	parseCmd.MarkFlagRequired("file")
}

func parseStatutes(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(parseFlags.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", parseFlags.file, err)
	}
	source := string(data)

	doc, warnings, err := sdl.ParseDocument(source)
	if err != nil {
		var parseErr *sdlerrors.Error
		if errors.As(err, &parseErr) {
			fmt.Fprintln(os.Stderr, sdlerrors.Render(parseErr, source))
			os.Exit(1)
		}
		return err
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}

	var out []byte
	switch parseFlags.format {
	case "yaml":
		out, err = sdl.DocumentToYAML(doc)
	case "json":
		out, err = sdl.DocumentToJSON(doc)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", parseFlags.format)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
