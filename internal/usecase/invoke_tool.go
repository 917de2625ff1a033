package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/i2y/mcpgw/internal/domain"
)

// InvokeToolUseCase is the shared path from a typed argument record to a
// tools/call request.
type InvokeToolUseCase struct {
	caller ToolCaller
	logger *slog.Logger
}

// NewInvokeToolUseCase creates a new InvokeToolUseCase.
func NewInvokeToolUseCase(caller ToolCaller, logger *slog.Logger) *InvokeToolUseCase {
	return &InvokeToolUseCase{
		caller: caller,
		logger: logger.With("usecase", "InvokeTool"),
	}
}

// Execute validates and serializes args, then calls toolName on the gateway.
// Arguments implementing domain.ArgsValidator are checked first. Errors from the
// caller are returned unwrapped so their kind stays visible to errors.As.
func (uc *InvokeToolUseCase) Execute(ctx context.Context, toolName string, args any) (json.RawMessage, error) {
	log := uc.logger.With(slog.String("tool_name", toolName))

	if v, ok := args.(domain.ArgsValidator); ok {
		if err := v.Validate(); err != nil {
			log.Warn("Rejected tool arguments", slog.Any("error", err))
			return nil, err
		}
	}

	arguments, err := domain.ToArguments(args)
	if err != nil {
		log.Error("Failed to build tool arguments", slog.Any("error", err))
		return nil, &domain.ValidationError{Err: fmt.Errorf("tool %s: %w", toolName, err)}
	}

	log.Debug("Invoking gateway tool", slog.Any("arguments", arguments))
	result, err := uc.caller.CallTool(ctx, toolName, arguments)
	if err != nil {
		log.Warn("Tool invocation failed", slog.Any("error", err))
		return nil, err
	}
	log.Debug("Tool invocation successful", slog.Int("result_size", len(result)))
	return result, nil
}

// ListTools passes through to the gateway's tools/list.
func (uc *InvokeToolUseCase) ListTools(ctx context.Context) ([]domain.ToolDescriptor, error) {
	tools, err := uc.caller.ListTools(ctx)
	if err != nil {
		uc.logger.Warn("Failed to list tools", slog.Any("error", err))
		return nil, err
	}
	uc.logger.Info("Listed gateway tools", slog.Int("count", len(tools)))
	return tools, nil
}
