package common

import (
	"context"

	"jobscope/internal/errors"
)

// OperationFunc produces the command's result. The context carries the
// interrupt signal so a long model call can be abandoned cleanly.
type OperationFunc[Output any] func(context.Context) (Output, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc func(cfg CommandConfig)

// RunReportCommand encapsulates the common logic for report-producing
// CLI commands: run the operation, then route the result through the
// formatter registry to the configured destination.
func RunReportCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation OperationFunc[Output],
	logDetails LogDetailsFunc,
) error {
	outputHandler := NewOutputHandler(logger)

	if logDetails != nil {
		logDetails(cmdConfig)
	}

	result, err := operation(ctx)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
