// Command muon validates MuON documents.
package main

import (
	"fmt"
	"os"

	muon "github.com/muon-data/go-muon"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "muon",
		Usage: "inspect and validate MuON documents",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "tokenize files and report malformed lines",
				ArgsUsage: "FILE...",
				Action:    runCheck,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("usage: muon check FILE...", 2)
	}

	failed := false
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if err := muon.Check(data); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s: ok\n", path)
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}
