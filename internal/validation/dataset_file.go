// Package validation checks dataset files before they reach the loader so start-up
// failures name the actual problem with the file.
package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrNotExist          = errors.New("dataset file does not exist")
	ErrIsDirectory       = errors.New("dataset path is a directory")
	ErrEmptyFile         = errors.New("dataset file is empty")
	ErrUnsupportedType   = errors.New("unsupported dataset file type")
	ErrTemporaryWorkbook = errors.New("dataset file is a temporary Excel workbook")
)

// SupportedExtensions are the file extensions the loader can decode when no format is
// configured.
var SupportedExtensions = []string{".csv", ".txt", ".xlsx", ".xlsm"}

// FileValidator validates dataset files
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

// ValidateDatasetFile checks that path is a readable, non-empty regular file. When
// format is empty the extension must be one the loader recognises.
func (v *FileValidator) ValidateDatasetFile(path, format string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("Dataset file does not exist", slog.String("file", path))
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	if err != nil {
		v.logger.Error("Failed to stat dataset file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Dataset path is a directory", slog.String("path", path))
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if info.Size() == 0 {
		v.logger.Error("Dataset file is empty", slog.String("file", path))
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file", slog.String("file", path))
		return fmt.Errorf("%w: %s", ErrTemporaryWorkbook, path)
	}

	if format == "" {
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(SupportedExtensions, ext) {
			v.logger.Error("Dataset file type not recognised",
				slog.String("file", path),
				slog.String("extension", ext))
			return fmt.Errorf("%w %q: %s (set the dataset format explicitly)", ErrUnsupportedType, ext, path)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Dataset file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Dataset file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

