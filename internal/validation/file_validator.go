// Package validation checks inbound files before they reach the parser.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "reclamos/internal/errors"
)

// allowedExtensions are the spreadsheet formats the loader understands.
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
}

// FileValidator provides file validation for uploads and CLI inputs.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateUpload checks an uploaded file's name and size before parsing.
func (v *FileValidator) ValidateUpload(filename string, size, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("filename", filename),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError(
			fmt.Sprintf("unsupported file type %q, expected .xlsx or .csv", ext))
	}
	if size == 0 {
		return apperrors.NewAppValidationError("uploaded file is empty")
	}
	if size > maxBytes {
		v.logger.Warn("rejected oversized upload",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("max", maxBytes))
		return apperrors.NewAppValidationError(
			fmt.Sprintf("file exceeds the %d byte limit", maxBytes))
	}
	return nil
}

// ValidateFile checks that a local spreadsheet file exists and is readable.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()
	return nil
}
