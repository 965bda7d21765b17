// Command dashctl runs the dashboard pipeline from the command line and prints the
// results as JSON: dataset columns, column resolution, the table preview and the
// Plotly chart specifications served by the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"stockdash/internal/config"
	"stockdash/internal/infrastructure"
)

func main() {
	logger, err := infrastructure.NewLogger(config.LoggingConfig{Level: "warn", Output: "console"}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander, &env{out: os.Stdout, errOut: os.Stderr, logger: logger})

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// register the subcommands.
func register(c *subcommands.Commander, e *env) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	c.Register(&versionCmd{env: e}, "")

	c.Register(&columnsCmd{env: e}, "dataset")
	c.Register(&resolveCmd{env: e}, "dataset")
	c.Register(&previewCmd{env: e}, "dataset")

	c.Register(&chartsCmd{env: e}, "charts")
	c.Register(&composeCmd{env: e}, "charts")
}
