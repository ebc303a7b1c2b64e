package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/internal/lint"
)

func newLintCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lint [template]",
		Short: "Lint a synthesized template",
		Long: `Lint runs cfn-lint rules against a synthesized template file.

Warnings are reported but only error-level findings fail the run.

Examples:
    delivery-infra synth -o template.json && delivery-infra lint template.json
    delivery-infra lint template.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := lint.Template(args[0])
			if err != nil {
				return err
			}
			return outputLintResult(result, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func outputLintResult(result deliveryinfra.LintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Issues) == 0 {
			fmt.Println("No issues found.")
			return nil
		}
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Printf("%s: %s at %s [%s]\n", issue.Severity, issue.Message, issue.Path, issue.Rule)
			} else {
				fmt.Printf("%s: %s [%s]\n", issue.Severity, issue.Message, issue.Rule)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2) // Exit code 2 for issues found
	}
	return nil
}
