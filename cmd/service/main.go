package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "weather-forecast-service",
		Usage:   "Versioned synthetic weather forecast API",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "config environment; reads {config-dir}/{env}.yaml",
				Value:   "dev",
				Sources: cli.EnvVars("ENV_NAME"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory holding environment config files",
				Value:   "config",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "DEBUG, INFO, WARN or ERROR",
				Value:   "INFO",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "port",
						Usage: "listen port; overrides server.port and SERVER_PORT",
					},
				},
				Action: serveAction,
			},
			{
				Name:  "docs",
				Usage: "print the filtered API document for one version",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-version",
						Aliases: []string{"a"},
						Usage:   "document key (v1 or v2)",
						Value:   "v1",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "json or yaml",
						Value: "json",
					},
				},
				Action: docsAction,
			},
		},
	}
}
