// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
type Json = map[string]any

// PolicyVersion is the current IAM policy language version.
const PolicyVersion = "2012-10-17"

// PolicyDocument represents an IAM policy document.
//
//	var ConnectPolicy = PolicyDocument{
//	    Version:   PolicyVersion,
//	    Statement: []PolicyStatement{connect},
//	}
type PolicyDocument struct {
	Version   string            `json:"Version,omitempty"`
	Statement []PolicyStatement `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version and
// the given statements.
func NewPolicyDocument(statements ...PolicyStatement) PolicyDocument {
	return PolicyDocument{Version: PolicyVersion, Statement: statements}
}

// PolicyStatement represents an IAM policy statement. Action and Resource
// hold either a single string or a list of strings.
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// Allow creates an Allow statement over the given actions and resources.
func Allow(actions []string, resources []string) PolicyStatement {
	return PolicyStatement{
		Effect:   "Allow",
		Action:   anyList(actions),
		Resource: anyList(resources),
	}
}

// anyList collapses a single-element list to its element, matching how
// IAM documents are conventionally written.
func anyList(items []string) any {
	if len(items) == 1 {
		return items[0]
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// ServicePrincipal represents a service principal
// (e.g., lambda.amazonaws.com). Serializes to {"Service": ...}.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// AssumedBy builds the trust policy document for a role assumed by the
// given service principal.
func AssumedBy(service string) PolicyDocument {
	return PolicyDocument{
		Version: PolicyVersion,
		Statement: []PolicyStatement{{
			Effect:    "Allow",
			Principal: ServicePrincipal{service},
			Action:    "sts:AssumeRole",
		}},
	}
}
