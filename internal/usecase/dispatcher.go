package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tracekit/jirabridge/internal/domain"
)

const tracerName = "github.com/tracekit/jirabridge/internal/usecase"

// Dispatcher routes a tool call to its handler: look up the spec,
// validate the arguments, invoke, and normalize the outcome. No error
// crosses its boundary unclassified, and nothing touches the remote API
// before validation has passed.
type Dispatcher struct {
	registry   *Registry
	validators *Validators
	handlers   map[string]Handler
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewDispatcher wires the registry, compiled validators, and handler
// table together. Every registered tool must have a handler.
func NewDispatcher(registry *Registry, validators *Validators, handlers map[string]Handler, logger *slog.Logger) (*Dispatcher, error) {
	for _, spec := range registry.List() {
		if _, ok := handlers[spec.Name]; !ok {
			return nil, fmt.Errorf("tool %q has no handler", spec.Name)
		}
	}
	return &Dispatcher{
		registry:   registry,
		validators: validators,
		handlers:   handlers,
		logger:     logger.With("component", "dispatcher"),
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// Dispatch executes one tool call. The returned error is always a
// *domain.ToolError.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (result *domain.ToolResult, terr *domain.ToolError) {
	invocationID := uuid.NewString()
	log := d.logger.With(slog.String("tool", name), slog.String("invocation_id", invocationID))

	ctx, span := d.tracer.Start(ctx, "tool."+name,
		trace.WithAttributes(attribute.String("tool.invocation_id", invocationID)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Handler panicked.", slog.Any("panic", r))
			result = nil
			terr = domain.NewToolError(domain.CodeInternalError, "tool %s panicked: %v", name, r)
		}
		if terr != nil {
			span.SetStatus(codes.Error, string(terr.Code))
		}
	}()

	spec := d.registry.Find(name)
	if spec == nil {
		log.Warn("Unknown tool requested.")
		return nil, domain.NewToolError(domain.CodeNotFoundTool, "tool %q not found", name)
	}

	if violations := d.validators.Validate(name, args); len(violations) > 0 {
		log.Warn("Arguments failed validation.", slog.Any("violations", violations))
		return nil, domain.NewToolError(domain.CodeInvalidInput,
			"invalid arguments for %s: %s", name, strings.Join(violations, "; "))
	}

	log.Info("Dispatching tool call.")
	res, err := d.handlers[name].Invoke(ctx, args)
	if err != nil {
		te := domain.AsToolError(err)
		log.Warn("Tool call failed.", slog.String("code", string(te.Code)), slog.Any("error", te.Err))
		return nil, te
	}
	log.Info("Tool call succeeded.", slog.Int("warnings", len(res.Warnings)))
	return res, nil
}
