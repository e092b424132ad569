package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/featurelist/configseal/api/internal/config"
	"github.com/featurelist/configseal/api/internal/core/services"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a bearer token for the API (signed with CONFIGSEAL_JWT_SECRET)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "subject",
				Aliases:  []string{"s"},
				Usage:    "who the token is issued to",
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "ttl",
				Aliases: []string{"t"},
				Usage:   "token lifetime",
				Value:   24 * time.Hour,
			},
		},
		Action: tokenCmd,
	}
}

func tokenCmd(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("CONFIGSEAL_JWT_SECRET is not set; the API accepts unauthenticated requests")
	}
	if c.Duration("ttl") <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", c.Duration("ttl"))
	}

	token, err := services.NewTokenService(cfg.JWTSecret).Issue(c.String("subject"), c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
