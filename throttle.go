package agenthooks

import (
	"context"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Default sliding-window quota: at most 10 model requests per 60 seconds
// per session.
const (
	DefaultQuota  = 10
	DefaultWindow = 60 * time.Second
)

// ThrottleConfig configures the request throttle.
type ThrottleConfig struct {
	// Quota is the maximum number of model requests per window.
	// Defaults to DefaultQuota if <= 0.
	Quota int

	// Window is the rolling window length. Defaults to DefaultWindow if <= 0.
	Window time.Duration

	// Logger receives debug output. Defaults to the package logger.
	Logger *slog.Logger
}

// Throttle enforces a per-session request quota over a rolling window.
// Over-quota calls block the calling goroutine; quota enforcement is
// silent backpressure, never an error.
type Throttle struct {
	quota  int
	window time.Duration
	logger *slog.Logger

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewThrottle creates a throttle with the given configuration.
func NewThrottle(cfg ThrottleConfig) *Throttle {
	if cfg.Quota <= 0 {
		cfg.Quota = DefaultQuota
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	return &Throttle{
		quota:  cfg.Quota,
		window: cfg.Window,
		logger: resolveLogger(LoggingConfig{Logger: cfg.Logger}),
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Admit runs before an outbound model request. It rewrites empty text
// segments in req to a single space, then applies the quota: the first
// call in a session starts a window with count 1; later calls increment
// the count, and once the count exceeds the quota the call sleeps for
// `window - elapsed + 1` seconds (when positive) and resets the window.
//
// The window is reset after every over-quota hit, even when the computed
// delay was zero or negative.
func (t *Throttle) Admit(ctx context.Context, state State, req *openai.ChatCompletionRequest) {
	normalizeEmptySegments(req)

	now := t.now()
	nowSecs := float64(now.UnixNano()) / float64(time.Second)

	start, ok := state.Float(StateTimerStart)
	if !ok {
		state[StateTimerStart] = nowSecs
		state[StateRequestCount] = 1
		t.logger.DebugContext(ctx, "throttle: window opened",
			"timestamp", now.Unix(), "request_count", 1, "elapsed_secs", 0)
		return
	}

	count, _ := state.Int(StateRequestCount)
	count++
	elapsed := nowSecs - start
	t.logger.DebugContext(ctx, "throttle: request",
		"timestamp", now.Unix(), "request_count", count, "elapsed_secs", int(elapsed))

	if count > t.quota {
		// The original window math is kept verbatim, including the +1
		// second and its behavior right at the window boundary.
		delay := t.window.Seconds() - elapsed + 1
		if delay > 0 {
			t.logger.DebugContext(ctx, "throttle: sleeping", "seconds", delay)
			t.sleep(ctx, time.Duration(delay*float64(time.Second)))
		}
		state[StateTimerStart] = nowSecs
		state[StateRequestCount] = 1
		return
	}

	state[StateRequestCount] = count
}

// normalizeEmptySegments rewrites every empty text segment in the request
// to a single space so the model never receives an empty turn.
func normalizeEmptySegments(req *openai.ChatCompletionRequest) {
	if req == nil {
		return
	}
	for i := range req.Messages {
		msg := &req.Messages[i]
		if len(msg.MultiContent) > 0 {
			for j := range msg.MultiContent {
				part := &msg.MultiContent[j]
				if part.Type == openai.ChatMessagePartTypeText && part.Text == "" {
					part.Text = " "
				}
			}
			continue
		}
		if msg.Content == "" {
			msg.Content = " "
		}
	}
}

// sleepContext blocks for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
