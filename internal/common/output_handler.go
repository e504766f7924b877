package common

import (
	"fmt"
	"io"
	"os"

	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/formatters"
)

// CommandConfig holds common configuration for commands
type CommandConfig struct {
	OutputFile   string
	OutputFormat string
}

// OutputHandler handles formatting and writing output
type OutputHandler struct {
	fileProcessor *FileProcessor
	registry      *formatters.FormatterRegistry
	logger        *errors.Logger
	stdout        io.Writer
}

// NewOutputHandler creates a new output handler writing to os.Stdout
func NewOutputHandler(logger *errors.Logger) *OutputHandler {
	return NewOutputHandlerWithWriter(logger, os.Stdout)
}

// NewOutputHandlerWithWriter is NewOutputHandler with a custom destination
// for output that is not written to a file.
func NewOutputHandlerWithWriter(logger *errors.Logger, w io.Writer) *OutputHandler {
	if logger == nil {
		logger = errors.Discard()
	}
	return &OutputHandler{
		fileProcessor: NewFileProcessor(logger, 0),
		registry:      formatters.GlobalRegistry,
		logger:        logger,
		stdout:        w,
	}
}

// HandleOutput formats data and writes it to the specified output
func (oh *OutputHandler) HandleOutput(data any, config CommandConfig) error {
	if err := ValidateOutputFormat(config.OutputFormat, oh.registry.GetSupportedFormats()); err != nil {
		return err
	}

	output, err := oh.registry.Format(data, config.OutputFormat)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to format output as %s", config.OutputFormat), err)
	}

	return oh.write(output, config.OutputFile, "format", config.OutputFormat)
}

// WriteRendered writes an export. With no output file set the content goes
// to stdout; OutputFile "auto" picks the export's suggested filename.
func (oh *OutputHandler) WriteRendered(r engine.Rendered, outputFile string) (string, error) {
	if outputFile == "auto" {
		outputFile = r.Filename
	}
	if err := oh.write(r.Content, outputFile, "export_format", r.Format); err != nil {
		return "", err
	}
	return outputFile, nil
}

func (oh *OutputHandler) write(content, outputFile string, args ...any) error {
	if outputFile == "" {
		_, err := io.WriteString(oh.stdout, content)
		if err != nil {
			return errors.NewIOError(errors.ErrCodeFileWriteFailed, "Cannot write output", err)
		}
		return nil
	}

	if err := oh.fileProcessor.WriteFile(outputFile, content); err != nil {
		return err
	}
	oh.logger.Info("Output written successfully", append([]any{"file", outputFile}, args...)...)
	return nil
}

// GetSupportedFormats returns all supported output formats
func (oh *OutputHandler) GetSupportedFormats() []string {
	return oh.registry.GetSupportedFormats()
}
