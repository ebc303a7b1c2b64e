// Package deliveryinfra synthesizes the delivery API deployment as a
// CloudFormation resource graph.
//
// Infrastructure is declared as plain Go structs (see resources/) and
// assembled by internal/stack into a Template that the deployment engine
// applies:
//
//	var AccessLogs = logs.LogGroup{
//	    RetentionInDays: 60,
//	}
//
// The delivery-infra CLI drives a full synthesis pass: execution roles,
// the compute functions in their packaging variants, the rendered API
// definition, observability wiring and the one-shot database bootstrap.
package deliveryinfra

import (
	"encoding/json"
)

// Resource represents a CloudFormation resource.
// All resource types under resources/ (iam.Role, lambda.Function, ...)
// implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::IAM::Role")
	ResourceType() string
}

// AttrRef represents a GetAtt reference to an attribute of another
// resource in the same template.
//
// When serialized to CloudFormation JSON, AttrRef becomes:
//
//	{"Fn::GetAtt": ["AccessLogs", "Arn"]}
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "Arn")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// Metadata keys understood by the deployment engine. Resources carrying
// asset metadata have their artifacts staged by the engine before apply.
const (
	// MetadataAssetPath is the local path of a packaged artifact (zip) or
	// the source directory of a container image asset.
	MetadataAssetPath = "aws:asset:path"
	// MetadataAssetHash is the content hash used as the asset change key.
	MetadataAssetHash = "aws:asset:hash"
	// MetadataAssetProperty names the resource property the staged asset
	// location is written into (e.g., "Code").
	MetadataAssetProperty = "aws:asset:property"
	// MetadataAssetDockerfile is the build file name for image assets,
	// relative to the asset path.
	MetadataAssetDockerfile = "aws:asset:dockerfile-path"
	// MetadataAssetBundling records the containerized fallback build
	// (image and command) for assets bundled remotely.
	MetadataAssetBundling = "aws:asset:bundling"
)

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Transform                string                 `json:"Transform,omitempty" yaml:"Transform,omitempty"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	Metadata   map[string]any `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// SynthResult is the JSON output from `delivery-infra synth`.
type SynthResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	ApiURL    string   `json:"api_url,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// LintResult is the JSON output from `delivery-infra lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}
