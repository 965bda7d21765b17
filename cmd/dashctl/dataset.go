package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockdash/internal/services"
)

type columnsCmd struct {
	env  *env
	data dataFlags
}

func (*columnsCmd) Name() string     { return "columns" }
func (*columnsCmd) Synopsis() string { return "describe the dataset: date range and numeric columns" }
func (*columnsCmd) Usage() string {
	return `dashctl columns [-data <file>] [-date-column <name>]

  Loads the dataset and prints its source, row count, date range and numeric columns.
`
}

func (c *columnsCmd) SetFlags(f *flag.FlagSet) { c.data.SetFlags(f) }

func (c *columnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, _, err := c.env.open(c.data)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	info, err := svc.Info(ctx)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	if err := c.env.emit(info); err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type resolveCmd struct {
	env  *env
	data dataFlags
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolve logical column names against the dataset" }
func (*resolveCmd) Usage() string {
	return `dashctl resolve [-data <file>] <name>...

  Prints the physical column each logical name resolves to, with the candidates tried.
  Fails when any name matches no column.
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) { c.data.SetFlags(f) }

func (c *resolveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(c.env.errOut, "Error: at least one column name is required")
		return subcommands.ExitUsageError
	}
	svc, _, err := c.env.open(c.data)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}

	resolved := make([]services.Resolution, 0, f.NArg())
	var errs []error
	for _, name := range f.Args() {
		res, err := svc.Resolve(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, res)
	}
	if err := c.env.emit(resolved); err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	if len(errs) > 0 {
		c.env.fail(errors.Join(errs...))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type previewCmd struct {
	env  *env
	data dataFlags
	rows int
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "print the first rows of the dataset" }
func (*previewCmd) Usage() string {
	return `dashctl preview [-data <file>] [-n <rows>]

  Prints the table preview shown at the top of the dashboard.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
	f.IntVar(&c.rows, "n", 0, "Number of rows (defaults to the configured preview size)")
}

func (c *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.rows < 0 {
		fmt.Fprintln(c.env.errOut, "Error: -n must not be negative")
		return subcommands.ExitUsageError
	}
	svc, cfg, err := c.env.open(c.data)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	rows := c.rows
	if limit := cfg.Dashboard.MaxPreviewRows; limit > 0 && rows > limit {
		rows = limit
	}

	preview, err := svc.Preview(ctx, rows)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	if err := c.env.emit(preview); err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
