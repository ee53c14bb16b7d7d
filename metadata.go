package agenthooks

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tidwall/gjson"
)

// metadataKey is the key callers use to smuggle session metadata through
// the host's invocation plumbing.
const metadataKey = "sessionMetadata"

// ExtractorConfig configures the session metadata extractor.
type ExtractorConfig struct {
	Logger *slog.Logger
}

// Extractor locates caller-supplied session metadata at agent-turn start.
// Host versions expose the metadata in different places, so extraction is
// an ordered list of strategies; the first one that succeeds wins and its
// result is copied into session state. Nothing an individual strategy
// does can propagate a failure to the host.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an extractor with the given configuration.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	return &Extractor{logger: resolveLogger(LoggingConfig{Logger: cfg.Logger})}
}

// extraction is the typed result of one strategy attempt.
type extraction struct {
	meta any
	ok   bool
}

// strategy probes one known location on the invocation context.
type strategy struct {
	name string
	run  func(inv *Invocation) extraction
}

// Extract scans the invocation context for session metadata and, when
// found, stores it verbatim in state under StateSessionMetadata. When no
// strategy succeeds the full context is serialized for debug logging only
// and state is left untouched. A missing invocation context is a no-op.
func (e *Extractor) Extract(ctx context.Context, state State, inv *Invocation) {
	if inv == nil {
		e.logger.DebugContext(ctx, "extractor: invocation context is missing")
		return
	}

	for _, s := range extractionStrategies() {
		attempt := s.run(inv)
		if !attempt.ok {
			continue
		}
		state[StateSessionMetadata] = attempt.meta
		e.logger.DebugContext(ctx, "extractor: session metadata stored",
			"invocation_id", inv.ID, "strategy", s.name, "metadata", attempt.meta)
		return
	}

	e.logMiss(ctx, inv)
}

// extractionStrategies returns the probe order: the direct inputs
// mapping first, then the run-config's inputs and extra_kwargs mappings,
// then a serialized dump of the run-config itself.
func extractionStrategies() []strategy {
	return []strategy{
		{name: "inputs", run: fromInputs},
		{name: "run_config.inputs", run: fromRunConfigInputs},
		{name: "run_config.extra_kwargs", run: fromRunConfigExtraKwargs},
		{name: "run_config.dump", run: fromRunConfigDump},
	}
}

func fromInputs(inv *Invocation) extraction {
	if inv.Inputs == nil {
		return extraction{}
	}
	return metaFromValue(inv.Inputs[metadataKey])
}

func fromRunConfigInputs(inv *Invocation) extraction {
	if inv.RunConfig == nil || inv.RunConfig.Inputs == nil {
		return extraction{}
	}
	return scanSource(inv.RunConfig.Inputs)
}

func fromRunConfigExtraKwargs(inv *Invocation) extraction {
	if inv.RunConfig == nil || inv.RunConfig.ExtraKwargs == nil {
		return extraction{}
	}
	return scanSource(inv.RunConfig.ExtraKwargs)
}

// fromRunConfigDump serializes the run-config and scans the document for
// a top-level sessionMetadata or a nested inputs.sessionMetadata. A
// config that fails to serialize is treated as a miss, never an error.
func fromRunConfigDump(inv *Invocation) extraction {
	if inv.RunConfig == nil {
		return extraction{}
	}
	dump, err := json.Marshal(inv.RunConfig)
	if err != nil {
		return extraction{}
	}
	if res := gjson.GetBytes(dump, metadataKey); res.Exists() {
		return metaFromValue(res.Value())
	}
	if res := gjson.GetBytes(dump, "inputs."+metadataKey); res.Exists() {
		return metaFromValue(res.Value())
	}
	return extraction{}
}

// scanSource checks one mapping for a top-level sessionMetadata key, then
// for a nested inputs.sessionMetadata.
func scanSource(source map[string]any) extraction {
	if attempt := metaFromValue(source[metadataKey]); attempt.ok {
		return attempt
	}
	if nested, ok := source["inputs"].(map[string]any); ok {
		return metaFromValue(nested[metadataKey])
	}
	return extraction{}
}

// metaFromValue accepts only populated metadata. An absent key, nil, or
// an empty container is a miss so later strategies still get a chance.
func metaFromValue(v any) extraction {
	switch val := v.(type) {
	case nil:
		return extraction{}
	case string:
		if val == "" {
			return extraction{}
		}
	case bool:
		if !val {
			return extraction{}
		}
	case map[string]any:
		if len(val) == 0 {
			return extraction{}
		}
	case []any:
		if len(val) == 0 {
			return extraction{}
		}
	}
	return extraction{meta: v, ok: true}
}

// logMiss serializes the whole invocation context for diagnostics. This
// runs only when every strategy came up empty; state is never written.
func (e *Extractor) logMiss(ctx context.Context, inv *Invocation) {
	dump, err := json.Marshal(inv)
	if err != nil {
		e.logger.DebugContext(ctx, "extractor: failed to dump invocation context",
			"invocation_id", inv.ID, "error", err)
		return
	}

	if rc := gjson.GetBytes(dump, "run_config"); rc.IsObject() {
		keys := make([]string, 0, len(rc.Map()))
		for k := range rc.Map() {
			keys = append(keys, k)
		}
		e.logger.DebugContext(ctx, "extractor: run_config dump",
			"invocation_id", inv.ID, "keys", keys)
		if inputs := rc.Get("inputs"); inputs.Exists() {
			e.logger.DebugContext(ctx, "extractor: run_config inputs",
				"invocation_id", inv.ID, "inputs", inputs.String())
		}
		if extra := rc.Get("extra_kwargs"); extra.Exists() {
			e.logger.DebugContext(ctx, "extractor: run_config extra_kwargs",
				"invocation_id", inv.ID, "extra_kwargs", extra.String())
		}
	}

	e.logger.DebugContext(ctx, "extractor: session metadata not found",
		"invocation_id", inv.ID, "dump_keys", topLevelKeys(dump))
}

func topLevelKeys(doc []byte) []string {
	parsed := gjson.ParseBytes(doc)
	if !parsed.IsObject() {
		return nil
	}
	keys := make([]string, 0, len(parsed.Map()))
	for k := range parsed.Map() {
		keys = append(keys, k)
	}
	return keys
}
