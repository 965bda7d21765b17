package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"stockdash/internal/dashboard"
	"stockdash/internal/period"
	"stockdash/pkg/contracts"
)

type chartsCmd struct {
	env     *env
	data    dataFlags
	monthly bool
	name    string
}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "print the dashboard chart specifications" }
func (*chartsCmd) Usage() string {
	return `dashctl charts [-data <file>] [-monthly] [-name <chart>]

  Prints the close price chart, followed by the monthly commodity charts when
  -monthly is set. -name prints a single chart ("close", "monthly-gold", ...).
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
	f.BoolVar(&c.monthly, "monthly", false, "Include the monthly commodity charts")
	f.StringVar(&c.name, "name", "", "Print only the named chart")
}

func (c *chartsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, _, err := c.env.open(c.data)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}

	var out interface{}
	if c.name != "" {
		out, err = svc.Chart(ctx, c.name)
	} else {
		var d *dashboard.Dashboard
		d, err = svc.Build(ctx, dashboard.Intent{ShowMonthly: c.monthly})
		if d != nil {
			out = d.Charts()
		}
	}
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	if err := c.env.emit(out); err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type composeCmd struct {
	env     *env
	data    dataFlags
	columns string
	period  string
	title   string
}

func (*composeCmd) Name() string     { return "compose" }
func (*composeCmd) Synopsis() string { return "build an ad hoc chart over dataset columns" }
func (*composeCmd) Usage() string {
	return `dashctl compose [-data <file>] -columns <a,b> [-period <period>] [-title <title>]

  Charts the given columns, one trace each. With -period (daily, weekly, monthly,
  quarterly, yearly) the columns are resampled first, the last observation of each
  period winning.
`
}

func (c *composeCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
	f.StringVar(&c.columns, "columns", "", "Comma separated column names")
	f.StringVar(&c.period, "period", "", "Resampling period")
	f.StringVar(&c.title, "title", "", "Chart title")
}

func (c *composeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := dashboard.ChartRequest{Title: c.title}
	for _, col := range strings.Split(c.columns, ",") {
		if col = strings.TrimSpace(col); col != "" {
			req.Columns = append(req.Columns, col)
		}
	}
	if len(req.Columns) == 0 {
		fmt.Fprintln(c.env.errOut, "Error: -columns is required")
		return subcommands.ExitUsageError
	}
	if c.period != "" {
		p, err := period.Parse(c.period)
		if err != nil {
			c.env.fail(err)
			return subcommands.ExitUsageError
		}
		req.Period = &p
	}

	svc, _, err := c.env.open(c.data)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	spec, err := svc.Compose(ctx, req)
	if err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	if err := c.env.emit(spec); err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type versionCmd struct {
	env   *env
	short bool
}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print version information" }
func (*versionCmd) Usage() string    { return "dashctl version [-short]\n" }

func (c *versionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.short, "short", false, "print a single version line instead of JSON")
}

func (c *versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	if c.short {
		fmt.Fprintln(c.env.out, contracts.GetFullVersionString())
		return subcommands.ExitSuccess
	}
	if err := c.env.emit(contracts.GetVersionInfo()); err != nil {
		c.env.fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
