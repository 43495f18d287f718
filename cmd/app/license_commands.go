package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/license-manager/cmd/app/commands"
	"github.com/allisson/license-manager/internal/app"
	"github.com/allisson/license-manager/internal/config"
	issuanceHTTP "github.com/allisson/license-manager/internal/issuance/http"
)

func getLicenseCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-license",
			Usage: "Sign a license and write the license file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "License ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "xml",
					Usage:   "License file format: 'xml' or 'json'",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   issuanceHTTP.LicenseFileName,
					Usage:   "Output file ('-' for stdout)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				signingUseCase, err := container.SigningUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueLicense(
					ctx,
					signingUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("format"),
					cmd.String("output"),
				)
			},
		},
		{
			Name:  "verify-license",
			Usage: "Verify a license file against a product public key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "license",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "License file path",
				},
				&cli.StringFlag{
					Name:     "public-key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Product public key PEM file path",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunVerifyLicense(
					commands.DefaultIO().Writer,
					cmd.String("license"),
					cmd.String("public-key"),
					cmd.String("format"),
				)
			},
		},
	}
}
