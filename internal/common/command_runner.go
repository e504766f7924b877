package common

import (
	"context"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

// ResumeOperationFunc is the work a command performs on a loaded resume.
type ResumeOperationFunc[Output any] func(context.Context, *resume.Document) (Output, error)

// Runner bundles the helpers shared by file-based commands.
type Runner struct {
	Logger        *errors.Logger
	FileProcessor *FileProcessor
	OutputHandler *OutputHandler
}

// NewRunner builds a Runner that enforces maxFileSize on inputs and prints
// to stdout.
func NewRunner(logger *errors.Logger, maxFileSize int64) *Runner {
	if logger == nil {
		logger = errors.Discard()
	}
	return &Runner{
		Logger:        logger,
		FileProcessor: NewFileProcessor(logger, maxFileSize),
		OutputHandler: NewOutputHandler(logger),
	}
}

// RunResumeCommand loads filename as a resume, applies op and writes the
// formatted result.
func RunResumeCommand[Output any](
	ctx context.Context,
	r *Runner,
	cmdConfig CommandConfig,
	filename string,
	op ResumeOperationFunc[Output],
) error {
	doc, err := r.FileProcessor.ReadResume(filename)
	if err != nil {
		return err
	}

	r.Logger.Debug("Running resume command",
		"file", filename, "format", cmdConfig.OutputFormat, "output", cmdConfig.OutputFile)

	result, err := op(ctx, doc)
	if err != nil {
		return err
	}

	return r.OutputHandler.HandleOutput(result, cmdConfig)
}
