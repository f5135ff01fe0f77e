package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/salesloop/prepagent/agent/contract"
	toolx "github.com/salesloop/prepagent/agent/tool"
)

const defaultHandlerTimeout = 15 * time.Second

// Dispatcher authenticates, validates, and routes a single tool invocation.
// Every Invoke call is independent; the only shared state is the read-only
// registry.
type Dispatcher struct {
	registry *toolx.Registry
	gate     *AuthGate
	builder  *ContextBuilder

	handlerTimeout time.Duration
}

type Option func(*Dispatcher)

// WithHandlerTimeout bounds each handler run so a slow upstream cannot stall
// the caller indefinitely.
func WithHandlerTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.handlerTimeout = d
		}
	}
}

func New(registry *toolx.Registry, gate *AuthGate, builder *ContextBuilder, opts ...Option) (*Dispatcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("dispatch: registry is required")
	}
	if gate == nil {
		return nil, fmt.Errorf("dispatch: auth gate is required")
	}
	if builder == nil {
		return nil, fmt.Errorf("dispatch: context builder is required")
	}

	d := &Dispatcher{
		registry:       registry,
		gate:           gate,
		builder:        builder,
		handlerTimeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Invoke runs the full inbound path: auth gate first, then resolution,
// validation, context build, and handler execution. Auth failures return
// before the tool name is even resolved.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any, credential string) (any, *contractx.Error) {
	if err := d.gate.Authorize(credential); err != nil {
		return nil, err
	}
	return d.Execute(ctx, name, args)
}

// Execute runs one already-authenticated tool call. The orchestrator issues
// its per-step calls through here so composite intents share the same
// validation, context, and logging path.
func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) (result any, derr *contractx.Error) {
	requestID := uuid.NewString()
	start := time.Now()
	defer func() {
		outcome := "ok"
		if derr != nil {
			outcome = derr.Code
		}
		// Only the tool name and outcome are logged; argument payloads and
		// tokens never reach the logs. The underlying cause of an internal
		// error goes to logs only, never to the caller.
		evt := log.Info()
		if derr != nil && derr.Cause != nil {
			evt = log.Error().Err(derr.Cause)
		}
		evt.
			Str("request_id", requestID).
			Str("tool", name).
			Str("outcome", outcome).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("tool invocation")
	}()

	reg, ok := d.registry.Resolve(name)
	if !ok {
		return nil, contractx.BadRequest(fmt.Sprintf("unknown tool %q", name), nil)
	}

	if err := reg.ValidateArgs(args); err != nil {
		return nil, err
	}

	userID, _ := args["userId"].(string)
	ec, err := d.builder.Build(userID, log.With().Str("request_id", requestID).Logger())
	if err != nil {
		return nil, err
	}

	return d.runHandler(ctx, reg.Contract, args, ec)
}

func (d *Dispatcher) runHandler(ctx context.Context, c *contractx.Contract, args map[string]any, ec *contractx.ExecutionContext) (result any, derr *contractx.Error) {
	ctx, cancel := context.WithTimeout(ctx, d.handlerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			derr = contractx.Internal("tool execution failed", fmt.Errorf("handler panic: %v", r))
		}
	}()

	out, err := c.Handler(ctx, args, ec)
	if err != nil {
		return nil, contractx.AsError(err)
	}
	return out, nil
}
