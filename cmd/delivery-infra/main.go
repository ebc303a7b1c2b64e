// Command delivery-infra synthesizes the delivery API deployment.
//
// Usage:
//
//	delivery-infra synth                 Synthesize the CloudFormation template
//	delivery-infra graph                 Emit the resource dependency graph
//	delivery-infra lint template.json    Lint a synthesized template
//	delivery-infra watch                 Re-synthesize on input changes
//	delivery-infra version               Show version
//
// Configuration comes from DELIVERY_* environment variables; region and
// account fall back to the ambient AWS credentials.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "delivery-infra",
		Short: "Synthesize the delivery API deployment",
		Long: `delivery-infra synthesizes the delivery API deployment as a
CloudFormation template: execution roles, the compute functions in their
packaging variants, the rendered API definition, observability wiring and
the database bootstrap.

Connection and packaging inputs come from DELIVERY_* environment
variables (see internal/stack.Config). Region and account are resolved
from ambient AWS credentials when not pinned.`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newSynthCmd(&verbose),
		newGraphCmd(&verbose),
		newLintCmd(),
		newWatchCmd(&verbose),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("delivery-infra %s\n", getVersion())
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
