// Package engine defines the deployment surface the synthesized template
// is handed to. Synthesis never talks to the engine directly; the CLI
// connects the two.
package engine

import (
	"context"

	deliveryinfra "github.com/farmlane/delivery-infra"
)

// Status is the per-resource outcome of an apply.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusFailed    Status = "failed"
)

// Result reports the outcome for one resource.
type Result struct {
	LogicalID string `json:"logical_id"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Engine applies a synthesized template to the target environment.
// Implementations stage asset-backed resources (see the aws:asset
// metadata keys) before applying.
type Engine interface {
	Apply(ctx context.Context, tmpl *deliveryinfra.Template) ([]Result, error)
}
