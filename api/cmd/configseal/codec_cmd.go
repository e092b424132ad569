package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/featurelist/configseal/api/internal/infrastructure/obfuscation"
)

func obfuscateCommand() *cli.Command {
	return &cli.Command{
		Name:      "obfuscate",
		Usage:     "obfuscate a JSON object payload",
		UsageText: "obfuscate [payload]   (reads stdin when no payload is given)",
		Action:    obfuscateCmd,
	}
}

func deobfuscateCommand() *cli.Command {
	return &cli.Command{
		Name:      "deobfuscate",
		Usage:     "recover the payload of an obfuscated config",
		UsageText: "deobfuscate [obfuscated]   (reads stdin when no argument is given)",
		Action:    deobfuscateCmd,
	}
}

func obfuscateCmd(c *cli.Context) error {
	payload, err := inputArg(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, obfuscation.Obfuscate(payload))
	return nil
}

func deobfuscateCmd(c *cli.Context) error {
	obfuscated, err := inputArg(c)
	if err != nil {
		return err
	}

	payload, err := obfuscation.Deobfuscate(strings.TrimSpace(obfuscated))
	if err != nil {
		return fmt.Errorf("error (%s): %w", obfuscation.KindOf(err), err)
	}
	fmt.Fprintln(c.App.Writer, payload)
	return nil
}
