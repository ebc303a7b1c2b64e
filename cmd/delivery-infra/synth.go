package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/internal/awsenv"
	"github.com/farmlane/delivery-infra/internal/stack"
	"github.com/farmlane/delivery-infra/internal/template"
)

func newSynthCmd(verbose *bool) *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		summary      bool
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation template",
		Long: `Synth runs a full synthesis pass and emits the template.

Examples:
    delivery-infra synth
    delivery-infra synth -o template.json
    delivery-infra synth --format yaml
    delivery-infra synth --summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(cmd.Context(), *verbose, outputFormat, outputFile, summary)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Emit the synthesis summary instead of the template")

	return cmd
}

func runSynth(ctx context.Context, verbose bool, format, outputFile string, summary bool) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := synthesize(ctx, log)
	if err != nil {
		synthResult := deliveryinfra.SynthResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputSynthResult(synthResult, outputFile)
	}

	if summary {
		synthResult := deliveryinfra.SynthResult{
			Success:   true,
			Template:  *result.Template,
			Resources: result.Order,
			ApiURL:    result.ApiURL,
		}
		return outputSynthResult(synthResult, outputFile)
	}

	var data []byte
	switch format {
	case "json":
		data, err = template.ToJSON(result.Template)
	case "yaml":
		data, err = template.ToYAML(result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0644)
}

// synthesize loads configuration and runs the pass, resolving region and
// account from ambient credentials if the environment leaves them unset.
func synthesize(ctx context.Context, log *zap.Logger) (*stack.Result, error) {
	cfg, err := stack.Load()
	if err != nil {
		return nil, err
	}

	if cfg.Region == "" || cfg.AccountID == "" {
		env, err := awsenv.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.Region == "" {
			cfg.Region = env.Region
		}
		if cfg.AccountID == "" {
			cfg.AccountID = env.Account
		}
		if cfg.DBRegion == "" {
			cfg.DBRegion = cfg.Region
		}
		log.Debug("resolved environment from credentials",
			zap.String("region", cfg.Region),
			zap.String("account", cfg.AccountID))
	}

	return stack.Synthesize(cfg, log)
}

func outputSynthResult(result deliveryinfra.SynthResult, outputFile string) error {
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("synthesis failed")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0644)
}
