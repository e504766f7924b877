package common

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
	"resumescore/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger      *errors.Logger
	maxFileSize int64
}

// NewFileProcessor creates a file processor that refuses inputs larger
// than maxFileSize bytes (zero means unlimited).
func NewFileProcessor(logger *errors.Logger, maxFileSize int64) *FileProcessor {
	if logger == nil {
		logger = errors.Discard()
	}
	return &FileProcessor{logger: logger, maxFileSize: maxFileSize}
}

// ReadFile reads content from a file with proper error handling
func (fp *FileProcessor) ReadFile(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}
	return content, nil
}

// ReadResume validates, reads and normalizes a resume JSON file.
func (fp *FileProcessor) ReadResume(filename string) (*resume.Document, error) {
	if err := utils.ValidateInputFile(filename, fp.maxFileSize); err != nil {
		if _, statErr := os.Stat(filename); os.IsNotExist(statErr) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return nil, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}
	if !utils.IsJSONFile(filename) {
		fp.logger.Warn("Resume file does not have a .json extension", "filename", filename)
	}

	raw, err := fp.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	doc, err := resume.Normalize(raw)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr.WithContext("file", filename)
		}
		return nil, err
	}
	fp.logger.Debug("Resume loaded", "filename", filename, "size", utils.FormatFileSize(int64(len(raw))))
	return doc, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	if err := utils.EnsureParentDir(filename); err != nil {
		return errors.NewIOError("DIRECTORY_CREATE_FAILED",
			fmt.Sprintf("Cannot create directory for: %s", filename), err)
	}

	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		return errors.NewIOError(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}
	return nil
}
