// Package template assembles registered resources into a CloudFormation
// template.
package template

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/internal/serialize"
)

// Handle identifies a registered resource and produces references to it.
type Handle struct {
	name string
}

// Name returns the logical name of the resource.
func (h Handle) Name() string { return h.name }

// Att returns a GetAtt reference to the given attribute.
func (h Handle) Att(attribute string) deliveryinfra.AttrRef {
	return deliveryinfra.AttrRef{Resource: h.name, Attribute: attribute}
}

// Arn returns a GetAtt reference to the resource's Arn attribute.
func (h Handle) Arn() deliveryinfra.AttrRef {
	return h.Att("Arn")
}

// Builder accumulates resources and outputs for a single synthesis pass.
// Resources are write-once: registering the same logical name twice is an
// error, and definitions are never mutated after Build.
type Builder struct {
	description string
	names       []string
	defs        map[string]deliveryinfra.ResourceDef
	outputs     map[string]deliveryinfra.Output
}

// NewBuilder creates an empty template builder.
func NewBuilder(description string) *Builder {
	return &Builder{
		description: description,
		defs:        make(map[string]deliveryinfra.ResourceDef),
		outputs:     make(map[string]deliveryinfra.Output),
	}
}

// Add serializes the resource and registers it under the given logical name.
func (b *Builder) Add(name string, res deliveryinfra.Resource) (Handle, error) {
	if _, exists := b.defs[name]; exists {
		return Handle{}, errors.Newf("duplicate logical name: %s", name)
	}

	props, err := serialize.Properties(res)
	if err != nil {
		return Handle{}, errors.Wrapf(err, "serializing %s", name)
	}

	b.names = append(b.names, name)
	b.defs[name] = deliveryinfra.ResourceDef{
		Type:       res.ResourceType(),
		Properties: props,
	}
	return Handle{name: name}, nil
}

// SetMetadata attaches a metadata entry to a registered resource.
func (b *Builder) SetMetadata(h Handle, key string, value any) {
	def := b.defs[h.name]
	if def.Metadata == nil {
		def.Metadata = make(map[string]any)
	}
	def.Metadata[key] = value
	b.defs[h.name] = def
}

// DependsOn adds an explicit ordering edge: from is created no earlier
// than to.
func (b *Builder) DependsOn(from, to Handle) {
	def := b.defs[from.name]
	def.DependsOn = append(def.DependsOn, to.name)
	b.defs[from.name] = def
}

// AddOutput registers a template output.
func (b *Builder) AddOutput(name string, out deliveryinfra.Output) {
	b.outputs[name] = out
}

// Names returns the logical names in registration order.
func (b *Builder) Names() []string {
	return append([]string(nil), b.names...)
}

// Build assembles the template. Resources are checked for dependency
// cycles; the SAM transform header is set when serverless resources are
// present.
func (b *Builder) Build() (*deliveryinfra.Template, error) {
	if _, err := b.topologicalSort(); err != nil {
		return nil, err
	}

	tmpl := &deliveryinfra.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]deliveryinfra.ResourceDef, len(b.defs)),
	}

	for name, def := range b.defs {
		tmpl.Resources[name] = def
		if strings.HasPrefix(def.Type, "AWS::Serverless::") {
			tmpl.Transform = "AWS::Serverless-2016-10-31"
		}
	}

	if len(b.outputs) > 0 {
		tmpl.Outputs = make(map[string]deliveryinfra.Output, len(b.outputs))
		for name, out := range b.outputs {
			tmpl.Outputs[name] = out
		}
	}

	return tmpl, nil
}

// dependencies returns the logical names a resource refers to, combining
// explicit DependsOn edges with GetAtt references found in its properties.
func (b *Builder) dependencies(name string) []string {
	def := b.defs[name]

	seen := make(map[string]bool)
	for _, dep := range def.DependsOn {
		seen[dep] = true
	}
	for _, dep := range CollectRefs(def.Properties) {
		if _, exists := b.defs[dep]; exists {
			seen[dep] = true
		}
	}

	deps := make([]string, 0, len(seen))
	for dep := range seen {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// CollectRefs walks a serialized property tree and returns the logical
// names referenced through Fn::GetAtt.
func CollectRefs(v any) []string {
	var refs []string
	walkRefs(v, &refs)
	return refs
}

func walkRefs(v any, refs *[]string) {
	switch val := v.(type) {
	case map[string]any:
		if att, ok := val["Fn::GetAtt"]; ok {
			if parts, ok := att.([]any); ok && len(parts) > 0 {
				if name, ok := parts[0].(string); ok {
					*refs = append(*refs, name)
				}
			}
			return
		}
		for _, elem := range val {
			walkRefs(elem, refs)
		}
	case []any:
		for _, elem := range val {
			walkRefs(elem, refs)
		}
	}
}

// topologicalSort returns resources in dependency order using Kahn's
// algorithm with deterministic tie-breaking.
func (b *Builder) topologicalSort() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.defs {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name := range b.defs {
		for _, dep := range b.dependencies(name) {
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(b.defs) {
		var stuck []string
		for name, degree := range inDegree {
			if degree > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, errors.Newf("circular dependency involving: %s", strings.Join(stuck, ", "))
	}

	return result, nil
}

// Order returns resources in dependency order.
func (b *Builder) Order() ([]string, error) {
	return b.topologicalSort()
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *deliveryinfra.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *deliveryinfra.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
