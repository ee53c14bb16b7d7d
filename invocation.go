package agenthooks

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Invocation describes the current agent turn as provided by the host
// runtime. Host versions differ in which fields they populate, so every
// field is optional and every access in this library is defensive.
type Invocation struct {
	// ID correlates log lines and trace spans for one turn.
	ID string `json:"invocation_id,omitempty"`

	// Inputs is the direct caller-supplied input mapping, when the host
	// exposes one.
	Inputs map[string]any `json:"inputs,omitempty"`

	// RunConfig is the host's run configuration for this turn.
	RunConfig *RunConfig `json:"run_config,omitempty"`
}

// NewInvocation creates an invocation with a fresh correlation ID.
func NewInvocation() *Invocation {
	return &Invocation{ID: uuid.NewString()}
}

// RunConfig mirrors the host's run-configuration object. Beyond the two
// well-known mappings, hosts attach arbitrary top-level fields; those
// travel in Extra and are folded back in when the config is serialized.
type RunConfig struct {
	Inputs      map[string]any
	ExtraKwargs map[string]any

	// Extra holds the remaining top-level fields of the host object.
	Extra map[string]any
}

// MarshalJSON flattens Extra alongside the named fields, reproducing the
// host's own serialized shape.
func (rc *RunConfig) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(rc.Extra)+2)
	for k, v := range rc.Extra {
		merged[k] = v
	}
	if rc.Inputs != nil {
		merged["inputs"] = rc.Inputs
	}
	if rc.ExtraKwargs != nil {
		merged["extra_kwargs"] = rc.ExtraKwargs
	}
	return json.Marshal(merged)
}
