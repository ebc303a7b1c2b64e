package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farmlane/delivery-infra/internal/graph"
)

func newGraphCmd(verbose *bool) *cobra.Command {
	var (
		format  string
		cluster bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Emit the resource dependency graph",
		Long: `Graph synthesizes the stack and emits its dependency graph.

Examples:
    delivery-infra graph
    delivery-infra graph --format mermaid
    delivery-infra graph --cluster -o stack.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			result, err := synthesize(cmd.Context(), log)
			if err != nil {
				return err
			}

			g := &graph.Generator{
				Format:           graph.Format(format),
				ClusterByService: cluster,
			}
			out, err := g.GenerateString(result.Template)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(out)
				return nil
			}
			return os.WriteFile(output, []byte(out), 0644)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVar(&cluster, "cluster", false, "Group resources by AWS service")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
