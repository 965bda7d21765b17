package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"stockdash/internal/app"
	"stockdash/internal/config"
	"stockdash/internal/services"
)

// env is what every command shares: where results and errors go.
type env struct {
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

// dataFlags override the dataset and chart settings of the configuration.
type dataFlags struct {
	path       string
	dateColumn string
	format     string
	sheet      string
	theme      string
}

func (d *dataFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.path, "data", "", "Path to the CSV or XLSX dataset (defaults to the configured one)")
	f.StringVar(&d.dateColumn, "date-column", "", "Name of the date column")
	f.StringVar(&d.format, "format", "", "Dataset format: csv or xlsx (defaults to the file extension)")
	f.StringVar(&d.sheet, "sheet", "", "XLSX sheet to read (defaults to the first one)")
	f.StringVar(&d.theme, "theme", "", "Chart theme")
}

func (d *dataFlags) apply(cfg *config.Config) {
	if d.path != "" {
		cfg.Dataset.Path = d.path
	}
	if d.dateColumn != "" {
		cfg.Dataset.DateColumn = d.dateColumn
	}
	if d.format != "" {
		cfg.Dataset.Format = d.format
	}
	if d.sheet != "" {
		cfg.Dataset.Sheet = d.sheet
	}
	if d.theme != "" {
		cfg.Dashboard.Theme = d.theme
	}
}

// open loads the configuration, applies the flags and loads the dataset.
func (e *env) open(d dataFlags) (*services.DashboardService, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	d.apply(cfg)

	table, err := app.LoadDataset(cfg, e.logger)
	if err != nil {
		return nil, nil, err
	}
	return services.NewDashboardService(table, cfg.Dataset.Path, app.DashboardOptions(cfg), nil, nil, e.logger), cfg, nil
}

// emit writes v to the output as indented JSON.
func (e *env) emit(v interface{}) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) fail(err error) {
	fmt.Fprintf(e.errOut, "Error: %v\n", err)
}
