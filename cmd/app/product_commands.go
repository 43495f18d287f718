package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/license-manager/cmd/app/commands"
	"github.com/allisson/license-manager/internal/app"
	"github.com/allisson/license-manager/internal/config"
)

func getProductCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-product",
			Usage: "Create a product and generate its signing key pair",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Product name",
				},
				&cli.StringFlag{
					Name:    "description",
					Aliases: []string{"d"},
					Usage:   "Product description",
				},
				&cli.StringFlag{
					Name:    "algorithm",
					Aliases: []string{"alg"},
					Usage:   "Key algorithm (rsa-2048, rsa-3072, rsa-4096, ecdsa-p256, ed25519); defaults to KEY_ALGORITHM",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				productUseCase, err := container.ProductUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateProduct(
					ctx,
					productUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("description"),
					cmd.String("algorithm"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "export-public-key",
			Usage: "Export a product public key in PEM form",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Product ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "-",
					Usage:   "Output file ('-' for stdout)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				productUseCase, err := container.ProductUseCase()
				if err != nil {
					return err
				}

				return commands.RunExportPublicKey(
					ctx,
					productUseCase,
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("output"),
				)
			},
		},
	}
}
