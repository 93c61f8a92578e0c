package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/questline-studio/agency-site/pkg/config"
	"github.com/questline-studio/agency-site/pkg/server"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "site",
		Usage:  "Backend for the agency website: lead notifications and Steam app metadata",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serve,
			},
			{
				Name:   "config",
				Usage:  "Print the resolved configuration with secrets masked",
				Action: printConfig,
			},
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	server.ConfigureLogging(cfg)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg)
}

func printConfig(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(cfg.Masked(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))

	return cfg.Telegram.Validate()
}

