package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/license-manager/cmd/app/commands"
	"github.com/allisson/license-manager/internal/app"
	"github.com/allisson/license-manager/internal/config"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "create-secret",
			Usage: "Generate a new license signing secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-provider",
					Value: "",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault); omit for plaintext",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSecret(
					ctx,
					cryptoService.NewKMSService(),
					commands.DefaultIO().Writer,
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
