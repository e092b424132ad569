package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "configseal",
		Usage:     "obfuscate and deobfuscate feature-list edit configs",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			obfuscateCommand(),
			deobfuscateCommand(),
			serveCommand(),
			checkCommand(),
			tokenCommand(),
		},
	}
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// inputArg returns the first positional argument, or all of stdin when
// there is none. A single trailing newline from shells is dropped.
func inputArg(c *cli.Context) (string, error) {
	if c.Args().Present() {
		return c.Args().First(), nil
	}

	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
