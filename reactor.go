package agenthooks

import (
	"context"
	"log/slog"

	"github.com/tidwall/gjson"
)

// CartService is the port to the external cart system the reactor drives.
// Implementations perform the actual discount mutation; the reactor only
// decides when to call it.
type CartService interface {
	ApplyDiscount(ctx context.Context, customerID string) error
}

// NopCart is a CartService that does nothing. It is the default when no
// cart integration is configured.
type NopCart struct{}

func (NopCart) ApplyDiscount(context.Context, string) error { return nil }

// ReactorConfig configures the post-tool reactor.
type ReactorConfig struct {
	// Cart receives discount applications. Defaults to NopCart.
	Cart   CartService
	Logger *slog.Logger
}

// Reactor runs immediately after a tool executes. It observes the tool
// name and response status and applies deterministic side effects to the
// cart. It never replaces the tool's response.
type Reactor struct {
	cart   CartService
	logger *slog.Logger
}

// NewReactor creates a reactor with the given configuration.
func NewReactor(cfg ReactorConfig) *Reactor {
	if cfg.Cart == nil {
		cfg.Cart = NopCart{}
	}
	return &Reactor{
		cart:   cfg.Cart,
		logger: resolveLogger(LoggingConfig{Logger: cfg.Logger}),
	}
}

// React applies side effects for specific tool/status combinations:
// an approval tool that reported "approved", or a discount-approval tool
// that reported "ok". The return value is always nil so the tool's own
// response reaches the model unchanged.
func (r *Reactor) React(ctx context.Context, state State, call *ToolCall, resp ToolResponse) any {
	if call == nil {
		return nil
	}

	switch call.Name {
	case ToolAskForApproval:
		if resp.Status() == "approved" {
			r.applyDiscount(ctx, state, call)
		}
	case ToolApproveDiscount:
		if resp.Status() == "ok" {
			r.applyDiscount(ctx, state, call)
		}
	}

	return nil
}

func (r *Reactor) applyDiscount(ctx context.Context, state State, call *ToolCall) {
	r.logger.DebugContext(ctx, "reactor: applying discount to the cart", "tool", call.Name)
	if err := r.cart.ApplyDiscount(ctx, customerID(state, call)); err != nil {
		// Side-effect failures are logged, never surfaced to the host.
		r.logger.ErrorContext(ctx, "reactor: discount application failed",
			"tool", call.Name, "error", err)
	}
}

// customerID resolves the customer the discount applies to: the tool's
// own customer_id argument when present, otherwise the profile bound to
// the session.
func customerID(state State, call *ToolCall) string {
	if id, ok := call.Args["customer_id"].(string); ok && id != "" {
		return id
	}
	if profile, ok := state.String(StateCustomerProfile); ok && gjson.Valid(profile) {
		return gjson.Get(profile, "customer_id").String()
	}
	return ""
}
