package app

import (
	"fmt"
	"log/slog"

	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/dataset"
	"stockdash/internal/validation"
)

// Aliases returns the default column aliases extended by the configured ones.
func Aliases(cfg config.DatasetConfig) dataset.Aliases {
	aliases := dataset.DefaultAliases()
	for logical, candidates := range cfg.Aliases {
		aliases = aliases.With(logical, candidates...)
	}
	return aliases
}

// DatasetOptions derives the loader options from the configuration.
func DatasetOptions(cfg *config.Config, logger *slog.Logger) dataset.Options {
	return dataset.Options{
		DateColumn: cfg.Dataset.DateColumn,
		Aliases:    Aliases(cfg.Dataset),
		Format:     dataset.Format(cfg.Dataset.Format),
		Sheet:      cfg.Dataset.Sheet,
		Logger:     logger,
	}
}

// DashboardOptions derives the pipeline options from the configuration.
func DashboardOptions(cfg *config.Config) dashboard.Options {
	return dashboard.Options{
		PreviewRows: cfg.Dashboard.PreviewRows,
		CloseColumn: cfg.Dashboard.CloseColumn,
		Commodities: cfg.Dashboard.Commodities,
		Theme:       cfg.Dashboard.Theme,
		Aliases:     Aliases(cfg.Dataset),
	}
}

// LoadDataset reads the configured table.
func LoadDataset(cfg *config.Config, logger *slog.Logger) (*dataset.Table, error) {
	if cfg.Dataset.Path == "" {
		return nil, fmt.Errorf("no dataset path configured")
	}
	if err := validation.NewFileValidator(logger).ValidateDatasetFile(cfg.Dataset.Path, cfg.Dataset.Format); err != nil {
		return nil, err
	}
	t, err := dataset.LoadFile(cfg.Dataset.Path, DatasetOptions(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Dataset.Path, err)
	}
	logger.Info("dataset loaded",
		slog.String("path", cfg.Dataset.Path),
		slog.Int("rows", t.Len()),
		slog.Any("columns", t.Columns()))
	return t, nil
}
