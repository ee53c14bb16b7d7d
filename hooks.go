// Package agenthooks provides lifecycle callbacks for conversational
// agent runtimes: a request throttle applied before each model call, a
// guard and a reactor around tool execution, and a session metadata
// extractor run at agent-turn start. The host runtime, tool registry and
// session store are external; the hooks operate only on the session
// state object the host passes in.
package agenthooks

import (
	"context"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Config holds hook configuration. The zero value is usable: default
// quota and window, a no-op cart, default logging, no tracing.
type Config struct {
	// Quota is the maximum number of model requests per window.
	Quota int

	// Window is the rolling throttle window.
	Window time.Duration

	// Cart receives the reactor's discount applications.
	Cart CartService

	// Logging configures diagnostic output for all hooks.
	Logging *LoggingConfig

	// Tracer records spans around hook invocations. Nil disables tracing.
	Tracer Tracer
}

// Hooks bundles the four lifecycle callbacks behind one object so a host
// registers a single value at its extension points. The components are
// independent of each other; they share only the session state passed
// into every call.
type Hooks struct {
	throttle  *Throttle
	guard     *Guard
	reactor   *Reactor
	extractor *Extractor

	logger      *slog.Logger
	tracer      Tracer
	logToolArgs bool
	redact      bool
}

// New creates the hook bundle.
func New(cfg Config) *Hooks {
	logging := DefaultLoggingConfig()
	if cfg.Logging != nil {
		logging = *cfg.Logging
	}
	logger := resolveLogger(logging)

	return &Hooks{
		throttle:    NewThrottle(ThrottleConfig{Quota: cfg.Quota, Window: cfg.Window, Logger: logger}),
		guard:       NewGuard(GuardConfig{Logger: logger}),
		reactor:     NewReactor(ReactorConfig{Cart: cfg.Cart, Logger: logger}),
		extractor:   NewExtractor(ExtractorConfig{Logger: logger}),
		logger:      logger,
		tracer:      cfg.Tracer,
		logToolArgs: logging.LogToolArgs,
		redact:      logging.RedactSensitive,
	}
}

// OnAgentStart runs once at the start of an agent turn. It performs the
// best-effort session metadata extraction; failures never reach the host.
func (h *Hooks) OnAgentStart(ctx context.Context, state State, inv *Invocation) {
	ctx, end := h.startSpan(ctx, "hook.agent_start", map[string]any{
		"invocation_id": invocationID(inv),
	})
	defer end()
	defer h.recoverPanic(ctx, "agent_start")

	h.extractor.Extract(ctx, state, inv)
}

// OnLLMCall runs before each outbound model request and applies the
// request throttle. Over-quota calls block; no error is ever returned.
func (h *Hooks) OnLLMCall(ctx context.Context, state State, req *openai.ChatCompletionRequest) {
	count, _ := state.Int(StateRequestCount)
	ctx, end := h.startSpan(ctx, "hook.llm_call", map[string]any{
		"request_count": count,
	})
	defer end()
	defer h.recoverPanic(ctx, "llm_call")

	h.throttle.Admit(ctx, state, req)
}

// OnToolStart runs before a tool executes. A non-nil return value is the
// tool call's entire result and the real tool must not run.
func (h *Hooks) OnToolStart(ctx context.Context, state State, call *ToolCall) (result any) {
	ctx, end := h.startSpan(ctx, "hook.tool_start", map[string]any{
		"tool": toolName(call),
	})
	defer end()
	defer h.recoverPanic(ctx, "tool_start")

	if h.logToolArgs && call != nil {
		args := any(call.Args)
		if h.redact {
			args = redactSensitiveValue(call.Args)
		}
		h.log(ctx).DebugContext(ctx, "tool starting", "tool", call.Name, "args", args)
	}

	return h.guard.Check(ctx, state, call)
}

// OnToolComplete runs after a tool executes. It applies deterministic
// side effects and always returns nil so the tool response is never
// replaced.
func (h *Hooks) OnToolComplete(ctx context.Context, state State, call *ToolCall, resp ToolResponse) (result any) {
	ctx, end := h.startSpan(ctx, "hook.tool_complete", map[string]any{
		"tool":   toolName(call),
		"status": resp.Status(),
	})
	defer end()
	defer h.recoverPanic(ctx, "tool_complete")

	return h.reactor.React(ctx, state, call, resp)
}

func (h *Hooks) startSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func()) {
	tracer := h.tracer
	if fromCtx := GetTracer(ctx); fromCtx != nil {
		tracer = fromCtx
	}
	if tracer == nil {
		return ctx, func() {}
	}
	if sessionID, ok := GetSessionID(ctx); ok {
		attrs["session.id"] = sessionID
	}
	return tracer.StartSpan(ctx, name, attrs)
}

// recoverPanic keeps the never-propagate contract at the hook boundary:
// a panicking hook is logged and swallowed, not surfaced to the host.
func (h *Hooks) recoverPanic(ctx context.Context, hook string) {
	if r := recover(); r != nil {
		h.log(ctx).ErrorContext(ctx, "hook panic", "hook", hook, "panic", r)
	}
}

func (h *Hooks) log(ctx context.Context) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}
	return h.logger
}

func invocationID(inv *Invocation) string {
	if inv == nil {
		return ""
	}
	return inv.ID
}

func toolName(call *ToolCall) string {
	if call == nil {
		return ""
	}
	return call.Name
}
