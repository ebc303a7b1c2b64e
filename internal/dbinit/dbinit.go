// Package dbinit provisions the one-shot database bootstrap: a custom
// resource that invokes the populate function with the schema script,
// re-firing only when the script content changes.
package dbinit

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/cockroachdb/errors"
)

// HookResourceType is the custom resource type of the bootstrap hook.
const HookResourceType = "Custom::PopulateDataProvider"

// State tracks whether the schema script has been applied.
type State string

const (
	// StateUnset means the script has never run.
	StateUnset State = "Unset"
	// StateApplied means the current script has run once.
	StateApplied State = "Applied"
	// StateReapplied means the script changed after the first apply and
	// ran again.
	StateReapplied State = "Reapplied"
)

// Transition returns the state after an apply with the given change keys.
func Transition(current State, previousKey, currentKey string) State {
	if current == StateUnset || current == "" {
		return StateApplied
	}
	if previousKey != currentKey {
		return StateReapplied
	}
	return current
}

// Job holds the schema script and its content-derived change key.
type Job struct {
	Script string
	key    string
}

// NewJob reads the schema script. A missing script fails synthesis.
func NewJob(scriptPath string) (*Job, error) {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema script %s", scriptPath)
	}

	sum := sha256.Sum256(script)
	return &Job{
		Script: string(script),
		key:    hex.EncodeToString(sum[:]),
	}, nil
}

// ChangeKey is the content hash gating re-execution: deploys where it is
// unchanged leave the database alone.
func (j *Job) ChangeKey() string { return j.key }

// Hook is the custom resource that triggers the populate function.
type Hook struct {
	ServiceToken any    `json:"ServiceToken"`
	SqlScript    string `json:"SqlScript"`
	ChangeKey    string `json:"ChangeKey"`
}

// ResourceType returns the custom resource type.
func (Hook) ResourceType() string { return HookResourceType }

// Hook binds the job to the populate function.
func (j *Job) Hook(serviceToken any) Hook {
	return Hook{
		ServiceToken: serviceToken,
		SqlScript:    j.Script,
		ChangeKey:    j.key,
	}
}
