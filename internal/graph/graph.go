// Package graph generates DOT and Mermaid dependency graphs from a
// synthesized template.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/internal/template"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from synthesized templates.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate writes the dependency graph of the template to w.
func (g *Generator) Generate(tmpl *deliveryinfra.Template, w io.Writer) error {
	graph := g.buildGraph(tmpl)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(tmpl *deliveryinfra.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tmpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(tmpl *deliveryinfra.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := sortedNames(tmpl)

	if g.ClusterByService {
		g.addClusteredNodes(graph, tmpl, names)
	} else {
		for _, name := range names {
			graph.Node(name).Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
		}
	}

	for _, name := range names {
		def := tmpl.Resources[name]

		for _, dep := range def.DependsOn {
			if _, exists := tmpl.Resources[dep]; !exists {
				continue
			}
			graph.Edge(graph.Node(name), graph.Node(dep))
		}

		seen := make(map[string]bool)
		for _, dep := range template.CollectRefs(def.Properties) {
			if _, exists := tmpl.Resources[dep]; !exists || seen[dep] {
				continue
			}
			seen[dep] = true
			e := graph.Edge(graph.Node(name), graph.Node(dep))
			e.Attr("color", "blue")
		}
	}

	return graph
}

// addClusteredNodes groups nodes by the service segment of their
// CloudFormation type (AWS::Lambda::Function -> Lambda).
func (g *Generator) addClusteredNodes(graph *dot.Graph, tmpl *deliveryinfra.Template, names []string) {
	serviceResources := make(map[string][]string)
	for _, name := range names {
		service := extractService(tmpl.Resources[name].Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	services := make([]string, 0, len(serviceResources))
	for service := range serviceResources {
		services = append(services, service)
	}
	sort.Strings(services)

	for _, service := range services {
		resNames := serviceResources[service]
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")
			for _, name := range resNames {
				cluster.Node(name).Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		} else {
			for _, name := range resNames {
				graph.Node(name).Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		}
	}
}

func sortedNames(tmpl *deliveryinfra.Template) []string {
	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractService extracts the service segment of a CloudFormation type.
// Custom:: types fall into one "Custom" group.
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if parts[0] == "Custom" {
		return "Custom"
	}
	if len(parts) >= 3 {
		return parts[1]
	}
	if len(parts) == 1 && parts[0] != "" {
		return parts[0]
	}
	return "Other"
}
